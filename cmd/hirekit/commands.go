package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/config"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/letter"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/pipeline"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/ranking"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/stream"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a message to the assistant",
	Long: `Send a message to the running assistant and print its reply.

Examples:
  hirekit ask "Find me a Go developer job in Amsterdam" --profile cv.json
  hirekit ask "Schrijf een sollicitatiebrief voor Acme" --lang nl
  hirekit ask "How can I improve my CV summary?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		lang, _ := cmd.Flags().GetString("lang")

		body, err := buildChatRequest(strings.Join(args, " "), profilePath, lang)
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/v1/assistant/chat", body)
		if err != nil {
			return err
		}
		return printChatResponse(cmd.OutOrStdout(), resp)
	},
}

func init() {
	askCmd.Flags().String("profile", "", "path to a candidate profile JSON file")
	askCmd.Flags().String("lang", "", "preferred reply language (en, nl, fr, es, de)")
}

func buildChatRequest(message, profilePath, lang string) (pipeline.ChatRequest, error) {
	req := pipeline.ChatRequest{Message: message, LanguagePreference: lang}
	if profilePath == "" {
		return req, nil
	}
	data, err := os.ReadFile(profilePath)
	if err != nil {
		return req, fmt.Errorf("reading profile: %w", err)
	}
	if !json.Valid(data) {
		return req, fmt.Errorf("profile %s is not valid JSON", profilePath)
	}
	req.CandidateProfile = data
	return req, nil
}

// chatReply covers both structured reply shapes.
type chatReply struct {
	Type          pipeline.ReplyType         `json:"type"`
	Response      string                     `json:"response"`
	Jobs          []ranking.RankedJobListing `json:"jobs"`
	LetterUpdates *letter.Draft              `json:"letterUpdates"`
}

// printChatResponse prints a JSON reply or relays an event stream as it
// arrives.
func printChatResponse(w io.Writer, resp *http.Response) error {
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		var reply chatReply
		if err := decodeJSON(resp, &reply); err != nil {
			return err
		}
		printReply(w, reply)
		return nil
	}

	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	return stream.ReadEvents(resp.Body, func(e stream.Event) error {
		switch e.Type {
		case stream.TypeToken:
			fmt.Fprint(w, e.Content)
		case stream.TypeUpdate:
			data, _ := json.Marshal(e.Updates)
			fmt.Fprintf(w, "%s\n", colorize(colorYellow, "[cv update] "+string(data)))
		case stream.TypeDone:
			fmt.Fprintln(w)
		case stream.TypeError:
			fmt.Fprintln(w)
			return fmt.Errorf("assistant error: %s", e.Message)
		}
		return nil
	})
}

func printReply(w io.Writer, reply chatReply) {
	fmt.Fprintln(w, reply.Response)

	for i, job := range reply.Jobs {
		fmt.Fprintf(w, "\n%2d. %s  %s\n", i+1, colorize(colorBold, job.Title), colorize(colorGreen, fmt.Sprintf("%d%%", job.MatchScore)))
		fmt.Fprintf(w, "    %s, %s", job.Company, job.Location)
		if job.Salary != "" {
			fmt.Fprintf(w, " | %s", job.Salary)
		}
		if job.PostedDate != "" {
			fmt.Fprintf(w, " | %s", job.PostedDate)
		}
		fmt.Fprintln(w)
		if job.MatchReason != "" {
			fmt.Fprintf(w, "    %s\n", job.MatchReason)
		}
		if job.URL != "" {
			fmt.Fprintf(w, "    %s\n", colorize(colorCyan, job.URL))
		}
	}

	if d := reply.LetterUpdates; d != nil {
		fmt.Fprintln(w)
		if d.JobTitle != "" || d.CompanyName != "" {
			fmt.Fprintln(w, colorize(colorBold, strings.TrimSpace(d.JobTitle+" "+d.CompanyName)))
		}
		for _, block := range []string{d.Opening, d.Body, d.Closing, d.Signature} {
			fmt.Fprintf(w, "%s\n\n", block)
		}
	}
}

// --- interactions ---

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "Manage interaction history",
}

var interactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		kind, _ := cmd.Flags().GetString("intent")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		q := url.Values{}
		q.Set("limit", fmt.Sprint(limit))
		q.Set("offset", fmt.Sprint(offset))
		if kind != "" {
			q.Set("intent", kind)
		}
		resp, err := client.get(cmd.Context(), "/interactions?"+q.Encode())
		if err != nil {
			return err
		}

		var interactions []storage.Interaction
		if err := decodeJSON(resp, &interactions); err != nil {
			return err
		}
		printInteractions(cmd.OutOrStdout(), interactions)
		return nil
	},
}

func printInteractions(w io.Writer, interactions []storage.Interaction) {
	if len(interactions) == 0 {
		fmt.Fprintln(w, "No interactions found.")
		return
	}

	for _, ix := range interactions {
		id := ix.ID
		if len(id) > 8 {
			id = id[:8]
		}
		query := ix.UserQuery
		if len(query) > 80 {
			query = query[:80] + "..."
		}
		fmt.Fprintf(w, "%s  %s  %-12s %-10s %s\n",
			colorize(colorCyan, id),
			ix.CreatedAt.Format("2006-01-02 15:04"),
			ix.Intent,
			ix.Status,
			query,
		)
	}
}

var interactionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/interactions/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}

		var interaction any
		if err := decodeJSON(resp, &interaction); err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(interaction)
	},
}

var interactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/interactions/"+url.PathEscape(args[0]))
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Deleted interaction %s", args[0])
		return nil
	},
}

func init() {
	interactionsListCmd.Flags().Int("limit", 20, "maximum number of interactions to list")
	interactionsListCmd.Flags().Int("offset", 0, "number of interactions to skip")
	interactionsListCmd.Flags().String("intent", "", "only list job_search, cover_letter or open_chat")
	interactionsCmd.AddCommand(interactionsListCmd)
	interactionsCmd.AddCommand(interactionsShowCmd)
	interactionsCmd.AddCommand(interactionsDeleteCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		if config.IsSecret(key) {
			printSuccess("Stored secret %s", key)
			return nil
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
