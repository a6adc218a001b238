// Command careerctl talks to a running careerpath server: book consultations,
// list them, browse careers, or chat with the guidance bot from a terminal.
package main

import (
	"bufio"
	"careerpath-backend/internal/client"
	"careerpath-backend/internal/intake"
	"careerpath-backend/internal/models"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

const usage = `usage: careerctl [-server URL] <command> [flags]

commands:
  submit   book a consultation
  list     show recent consultations
  careers  list career paths (optionally filtered with -q)
  chat     interactive chat with the guidance bot
`

func main() {
	log.SetFlags(0)
	server := flag.String("server", envOr("CAREERPATH_URL", "http://localhost:8080"), "server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	c := client.New(*server)
	ctx := context.Background()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "submit":
		err = runSubmit(ctx, c, args)
	case "list":
		err = runList(ctx, c, args)
	case "careers":
		err = runCareers(ctx, c, args)
	case "chat":
		err = runChat(ctx, c)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("careerctl: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runSubmit(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	req := models.CreateConsultationRequest{}
	fs.StringVar(&req.FullName, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	mode := fs.String("mode", string(models.ConsultationModeVideo), "video, audio or chat")
	fs.StringVar(&req.PreferredDate, "date", "", "preferred date (YYYY-MM-DD)")
	fs.StringVar(&req.Concerns, "concerns", "", "what you'd like to discuss")
	fs.Parse(args)
	req.PreferredMode = models.ConsultationMode(*mode)

	form := intake.NewForm(c)
	id, err := form.Submit(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Consultation requested. Reference: %s\n", id)
	return nil
}

func runList(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 20, "maximum rows")
	fs.Parse(args)

	rows, err := c.ListConsultations(ctx, *limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tNAME\tEMAIL\tMODE\tDATE\tID")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.FullName, r.Email, r.PreferredMode, r.PreferredDate, r.ID)
	}
	return tw.Flush()
}

func runCareers(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("careers", flag.ExitOnError)
	query := fs.String("q", "", "filter by title, description or skill")
	fs.Parse(args)

	list, err := c.ListCareers(ctx, *query)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tGROWTH\tSALARY")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", s.Slug, s.Icon, s.Title, s.Growth, s.Salary)
	}
	return tw.Flush()
}

// runChat reads lines from stdin. "/clear" empties the log, "/quit" exits.
func runChat(ctx context.Context, c *client.Client) error {
	sess, err := c.CreateChatSession(ctx)
	if err != nil {
		return err
	}
	defer c.DeleteChat(context.Background(), sess.ID)

	opened, err := c.OpenChat(ctx, sess.ID)
	if err != nil {
		return err
	}
	for _, m := range opened.Messages {
		printMessage(m)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return nil
		case "/clear":
			if _, err := c.ClearChat(ctx, sess.ID); err != nil {
				return err
			}
			opened, err := c.OpenChat(ctx, sess.ID)
			if err != nil {
				return err
			}
			for _, m := range opened.Messages {
				printMessage(m)
			}
			continue
		}

		fmt.Println("(typing...)")
		res, err := c.SendChat(ctx, sess.ID, line)
		if err != nil {
			return err
		}
		if res.BotMessage != nil {
			printMessage(*res.BotMessage)
		}
	}
}

func printMessage(m models.ChatMessage) {
	if m.Sender == models.SenderBot {
		fmt.Printf("\nbot: %s\n\n", m.Content)
		return
	}
	fmt.Printf("you: %s\n", m.Content)
}
