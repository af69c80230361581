package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/folioscout/folioscout"
	"github.com/folioscout/folioscout/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-flash"

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	currency string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fscout assist [<question>...]

  Starts an interactive chat about the portfolio. The assistant sees the
  current summary report. Requires GEMINI_API_KEY in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "CAD", "Reporting currency code.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := loadSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot series: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := folioscout.NewSummaryReport(snapshots, c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	instruction := "You are a portfolio assistant. Answer questions about the user's portfolio, " +
		"grounded on this summary report:\n\n" + renderer.RenderSummary(report)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting chat:", err)
		return subcommands.ExitFailure
	}

	ask := func(question string) subcommands.ExitStatus {
		resp, err := chat.Send(ctx, &genai.Part{Text: question})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error from assistant:", err)
			return subcommands.ExitFailure
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			fmt.Fprintln(os.Stderr, "No response from assistant")
			return subcommands.ExitFailure
		}
		printMarkdown(resp.Candidates[0].Content.Parts[0].Text)
		return subcommands.ExitSuccess
	}

	// A question on the command line is a one-shot.
	if f.NArg() > 0 {
		return ask(strings.Join(f.Args(), " "))
	}

	fmt.Println("Ask about your portfolio (empty line to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}
		if status := ask(question); status != subcommands.ExitSuccess {
			return status
		}
	}
	return subcommands.ExitSuccess
}
