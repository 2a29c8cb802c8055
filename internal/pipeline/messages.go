package pipeline

import (
	"fmt"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
)

// replyText holds the user-facing sentences of the structured replies in
// one language.
type replyText struct {
	found          string
	foundIn        string
	none           string
	noneIn         string
	clarify        string
	synthetic      string
	letter         string
	letterFallback string
}

var replies = map[locale.Language]replyText{
	locale.English: {
		found:          `I found %[1]d matching positions for "%[2]s".`,
		foundIn:        `I found %[1]d matching positions for "%[2]s" in %[3]s.`,
		none:           `I couldn't find any "%[1]s" positions right now. Try searching in nearby cities, using a broader job title, or looking at remote or hybrid positions.`,
		noneIn:         `I couldn't find any "%[1]s" positions in %[2]s right now. Try searching in nearby cities, using a broader job title, or looking at remote or hybrid positions.`,
		clarify:        `What kind of role are you looking for, and where? For example: "software developer jobs in Amsterdam".`,
		synthetic:      " These are example listings because live search is unavailable.",
		letter:         "Here is a draft cover letter. Review the details before sending it.",
		letterFallback: "Here is a starting draft for your cover letter. Fill in the placeholders before sending it.",
	},
	locale.Dutch: {
		found:          `Ik heb %[1]d passende vacatures gevonden voor "%[2]s".`,
		foundIn:        `Ik heb %[1]d passende vacatures gevonden voor "%[2]s" in %[3]s.`,
		none:           `Ik kon geen vacatures voor "%[1]s" vinden. Probeer te zoeken in steden in de buurt, met een bredere functietitel, of naar functies op afstand of hybride.`,
		noneIn:         `Ik kon geen vacatures voor "%[1]s" in %[2]s vinden. Probeer te zoeken in steden in de buurt, met een bredere functietitel, of naar functies op afstand of hybride.`,
		clarify:        `Naar wat voor functie zoek je, en waar? Bijvoorbeeld: "softwareontwikkelaar vacatures in Amsterdam".`,
		synthetic:      " Dit zijn voorbeeldvacatures omdat live zoeken niet beschikbaar is.",
		letter:         "Hier is een concept voor je motivatiebrief. Controleer de details voordat je hem verstuurt.",
		letterFallback: "Hier is een eerste opzet voor je motivatiebrief. Vul de open plekken in voordat je hem verstuurt.",
	},
	locale.German: {
		found:          `Ich habe %[1]d passende Stellen für "%[2]s" gefunden.`,
		foundIn:        `Ich habe %[1]d passende Stellen für "%[2]s" in %[3]s gefunden.`,
		none:           `Ich konnte keine Stellen für "%[1]s" finden. Versuche es in Städten in der Nähe, mit einem allgemeineren Jobtitel oder mit Remote- oder Hybrid-Stellen.`,
		noneIn:         `Ich konnte keine Stellen für "%[1]s" in %[2]s finden. Versuche es in Städten in der Nähe, mit einem allgemeineren Jobtitel oder mit Remote- oder Hybrid-Stellen.`,
		clarify:        `Welche Art von Stelle suchst du, und wo? Zum Beispiel: "Softwareentwickler Stellenangebote in Berlin".`,
		synthetic:      " Dies sind Beispielstellen, da die Live-Suche nicht verfügbar ist.",
		letter:         "Hier ist ein Entwurf für dein Anschreiben. Prüfe die Angaben, bevor du es versendest.",
		letterFallback: "Hier ist ein erster Entwurf für dein Anschreiben. Ergänze die Platzhalter, bevor du es versendest.",
	},
	locale.French: {
		found:          `J'ai trouvé %[1]d offres correspondant à « %[2]s ».`,
		foundIn:        `J'ai trouvé %[1]d offres correspondant à « %[2]s » à %[3]s.`,
		none:           `Je n'ai trouvé aucune offre pour « %[1]s ». Essayez les villes voisines, un intitulé de poste plus large, ou les postes en télétravail ou hybrides.`,
		noneIn:         `Je n'ai trouvé aucune offre pour « %[1]s » à %[2]s. Essayez les villes voisines, un intitulé de poste plus large, ou les postes en télétravail ou hybrides.`,
		clarify:        `Quel type de poste recherchez-vous, et où ? Par exemple : « offres d'emploi développeur à Paris ».`,
		synthetic:      " Ce sont des offres d'exemple car la recherche en direct est indisponible.",
		letter:         "Voici un brouillon de votre lettre de motivation. Vérifiez les détails avant de l'envoyer.",
		letterFallback: "Voici une première version de votre lettre de motivation. Complétez les champs à remplir avant de l'envoyer.",
	},
	locale.Spanish: {
		found:          `He encontrado %[1]d ofertas que coinciden con "%[2]s".`,
		foundIn:        `He encontrado %[1]d ofertas que coinciden con "%[2]s" en %[3]s.`,
		none:           `No he encontrado ofertas para "%[1]s". Prueba a buscar en ciudades cercanas, con un puesto más general, o en puestos remotos o híbridos.`,
		noneIn:         `No he encontrado ofertas para "%[1]s" en %[2]s. Prueba a buscar en ciudades cercanas, con un puesto más general, o en puestos remotos o híbridos.`,
		clarify:        `¿Qué tipo de puesto buscas y dónde? Por ejemplo: "ofertas de trabajo de desarrollador en Madrid".`,
		synthetic:      " Estas son ofertas de ejemplo porque la búsqueda en vivo no está disponible.",
		letter:         "Aquí tienes un borrador de tu carta de presentación. Revisa los detalles antes de enviarla.",
		letterFallback: "Aquí tienes una primera versión de tu carta de presentación. Completa los campos pendientes antes de enviarla.",
	},
}

func textFor(l locale.Language) replyText {
	if t, ok := replies[l]; ok {
		return t
	}
	return replies[locale.Base]
}

func (t replyText) searchSummary(count int, query, location string, synthetic bool) string {
	var s string
	switch {
	case count == 0 && location != "":
		s = fmt.Sprintf(t.noneIn, query, location)
	case count == 0:
		s = fmt.Sprintf(t.none, query)
	case location != "":
		s = fmt.Sprintf(t.foundIn, count, query, location)
	default:
		s = fmt.Sprintf(t.found, count, query)
	}
	if synthetic && count > 0 {
		s += t.synthetic
	}
	return s
}
