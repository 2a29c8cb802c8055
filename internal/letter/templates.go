package letter

import "github.com/LadFoxTom/hirekit-app-sub001/internal/locale"

// style holds the language-specific text of the drafting pipeline.
type style struct {
	directive   string
	placeholder string
	genericRole string

	// Fallback paragraphs. %[1]s is the candidate title, %[2]s the most
	// recent role.
	opening string
	body    string
	closing string
}

var styles = map[locale.Language]style{
	locale.English: {
		directive:   "Write the cover letter in English.",
		placeholder: "[Your Name]",
		genericRole: "an experienced professional",
		opening: "Dear Hiring Manager,\n\n" +
			"I am excited to apply for this position. With my background as %[1]s, I am confident that I would be a strong addition to your team.",
		body: "In my most recent role as %[2]s, I built experience that carries over directly to the responsibilities of this position. I take ownership of my work, collaborate closely with colleagues and stay focused on results that matter to the organisation.\n\n" +
			"What draws me to this opportunity is the chance to apply that experience in a new setting and keep growing. I am ready to contribute from day one.",
		closing: "Thank you for considering my application. I would welcome the opportunity to discuss how I can contribute to your team.\n\nKind regards,",
	},
	locale.Dutch: {
		directive:   "Schrijf de motivatiebrief in het Nederlands.",
		placeholder: "[Uw naam]",
		genericRole: "ervaren professional",
		opening: "Geachte heer/mevrouw,\n\n" +
			"Met veel enthousiasme solliciteer ik naar deze functie. Als %[1]s ben ik ervan overtuigd dat mijn achtergrond goed aansluit bij uw team.",
		body: "In mijn meest recente rol als %[2]s heb ik ervaring opgedaan die direct aansluit bij de verantwoordelijkheden van deze functie. Ik neem eigenaarschap over mijn werk, werk graag nauw samen met collega's en richt mij op resultaten die ertoe doen.\n\n" +
			"Deze kans spreekt mij aan omdat ik mijn ervaring in een nieuwe omgeving wil inzetten en verder wil groeien. Ik kan vanaf de eerste dag een bijdrage leveren.",
		closing: "Hartelijk dank voor het overwegen van mijn sollicitatie. Graag licht ik in een gesprek toe wat ik voor uw team kan betekenen.\n\nMet vriendelijke groet,",
	},
	locale.German: {
		directive:   "Schreibe das Anschreiben auf Deutsch.",
		placeholder: "[Ihr Name]",
		genericRole: "erfahrene Fachkraft",
		opening: "Sehr geehrte Damen und Herren,\n\n" +
			"mit großem Interesse bewerbe ich mich auf diese Stelle. Als %[1]s bin ich überzeugt, dass mein Hintergrund Ihr Team gut ergänzt.",
		body: "In meiner letzten Position als %[2]s habe ich Erfahrungen gesammelt, die sich direkt auf die Aufgaben dieser Stelle übertragen lassen. Ich übernehme Verantwortung für meine Arbeit, arbeite eng mit Kolleginnen und Kollegen zusammen und konzentriere mich auf Ergebnisse, die zählen.\n\n" +
			"Diese Stelle reizt mich, weil ich meine Erfahrung in einem neuen Umfeld einbringen und weiter wachsen möchte. Ich kann vom ersten Tag an einen Beitrag leisten.",
		closing: "Vielen Dank für die Berücksichtigung meiner Bewerbung. Über die Gelegenheit zu einem persönlichen Gespräch freue ich mich sehr.\n\nMit freundlichen Grüßen",
	},
	locale.French: {
		directive:   "Rédige la lettre de motivation en français.",
		placeholder: "[Votre nom]",
		genericRole: "professionnel expérimenté",
		opening: "Madame, Monsieur,\n\n" +
			"C'est avec un grand intérêt que je vous adresse ma candidature pour ce poste. En tant que %[1]s, je suis convaincu que mon parcours correspond aux besoins de votre équipe.",
		body: "Dans mon dernier poste de %[2]s, j'ai acquis une expérience directement transposable aux responsabilités de ce poste. Je m'investis pleinement dans mon travail, je collabore étroitement avec mes collègues et je reste concentré sur des résultats concrets.\n\n" +
			"Cette opportunité m'attire car elle me permettrait de mettre cette expérience au service d'un nouvel environnement et de continuer à progresser. Je suis prêt à contribuer dès le premier jour.",
		closing: "Je vous remercie de l'attention portée à ma candidature et serais ravi d'échanger avec vous lors d'un entretien.\n\nJe vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.",
	},
	locale.Spanish: {
		directive:   "Escribe la carta de presentación en español.",
		placeholder: "[Su nombre]",
		genericRole: "profesional con experiencia",
		opening: "Estimado/a responsable de selección:\n\n" +
			"Me complace presentar mi candidatura para este puesto. Como %[1]s, estoy convencido de que mi trayectoria encaja con las necesidades de su equipo.",
		body: "En mi puesto más reciente como %[2]s adquirí experiencia que se aplica directamente a las responsabilidades de esta posición. Asumo la responsabilidad de mi trabajo, colaboro de cerca con mis compañeros y me centro en resultados que aportan valor.\n\n" +
			"Esta oportunidad me atrae porque me permitiría aplicar esa experiencia en un entorno nuevo y seguir creciendo. Estoy preparado para contribuir desde el primer día.",
		closing: "Le agradezco la atención prestada a mi candidatura. Quedo a su disposición para ampliar cualquier información en una entrevista.\n\nAtentamente,",
	},
}

func styleFor(l locale.Language) style {
	if s, ok := styles[l]; ok {
		return s
	}
	return styles[locale.Base]
}

const instructions = `You are a professional cover letter writer. %s

Write a tailored cover letter based on the request and the candidate profile below. Your output must be ONLY a single valid JSON object with this exact structure, no markdown and no explanation:

{"recipientName": "", "recipientTitle": "", "companyName": "", "companyAddress": "", "jobTitle": "", "opening": "", "body": "", "closing": "", "signature": ""}

Rules:
- opening: the salutation and one paragraph naming the role and why the candidate is interested. Do not start with a generic phrase such as "I am writing to apply".
- body: 2 to 3 paragraphs. First the candidate's interest and fit for the role, then 2 to 3 concrete achievements from the profile tied to the role, then enthusiasm and cultural fit.
- closing: a short call to action followed by the sign-off.
- Separate paragraphs with a blank line (two line breaks).
- The whole letter is 300 to 400 words.
- signature: the candidate's full name%s.
- Fill recipient and company fields only when the request names them; otherwise leave them empty.

REQUEST:
%s

CANDIDATE PROFILE:
%s`
