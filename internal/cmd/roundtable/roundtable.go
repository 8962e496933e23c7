// Package roundtable implements the local administration CLI: it manages
// roles and meetings against the sqlite database directly and can run a
// discussion without going through the MCP transport.
package roundtable

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/roundtable/internal/platform/config"
	"github.com/louisbranch/roundtable/internal/roundtable/app"
	"github.com/louisbranch/roundtable/internal/roundtable/consensus"
	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
	"github.com/louisbranch/roundtable/internal/roundtable/role"
	"github.com/louisbranch/roundtable/internal/roundtable/storage/sqlite"
)

const usage = `Usage: roundtable [flags] <command> <action> [action flags]

Commands:
  role create -name NAME [-description TEXT] [-notes TEXT]
  role list
  role delete -id ID
  role identity -id ID

  meeting create -topic TOPIC -roles ID[,ID...] [-rounds N]
  meeting list
  meeting get -id ID
  meeting delete -id ID
  meeting topic -id ID -topic TOPIC
  meeting rounds -id ID -rounds N
  meeting add -id ID -role ID
  meeting remove -id ID -role ID
  meeting start -id ID
  meeting continue -id ID [-rounds N]
  meeting status -id ID
  meeting minutes -id ID
  meeting followup -id ID -topic TOPIC`

// Config holds CLI configuration shared by all subcommands.
type Config struct {
	DBPath       string `env:"ROUNDTABLE_DB_PATH"        envDefault:"roundtable.db"`
	OpenAIAPIKey string `env:"ROUNDTABLE_OPENAI_API_KEY"`
	OpenAIModel  string `env:"ROUNDTABLE_OPENAI_MODEL"   envDefault:"gpt-4o-mini"`
}

// ParseConfig parses environment and global flags into a Config. Remaining
// arguments select the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, nil, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	fs.StringVar(&cfg.OpenAIModel, "model", cfg.OpenAIModel, "generation model")
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Run executes one CLI subcommand and writes human-readable output to out.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if len(args) < 2 {
		return fmt.Errorf("missing command\n\n%s", usage)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	cli := &cli{
		cfg: cfg,
		out: out,
		svc: app.NewService(app.Config{
			Roles:    store,
			Meetings: store,
			Usage:    store,
			Invoker:  newInvoker(cfg),
			Detector: consensus.NewMarkerJudge(newInvoker(cfg), log.Default()),
			Logger:   log.Default(),
		}),
	}

	switch args[0] {
	case "role":
		return cli.role(ctx, args[1], args[2:])
	case "meeting":
		return cli.meeting(ctx, args[1], args[2:])
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

// newInvoker builds the generation stack. Without an API key the invoker
// fails on first use so read-only commands keep working.
func newInvoker(cfg Config) generator.Invoker {
	if cfg.OpenAIAPIKey == "" {
		return generator.InvokerFunc(func(context.Context, generator.Request) (string, error) {
			return "", fmt.Errorf("ROUNDTABLE_OPENAI_API_KEY is required to run meetings")
		})
	}
	return generator.NewRetrying(generator.NewOpenAIInvoker(generator.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	}), generator.DefaultRetryPolicy())
}

type cli struct {
	cfg Config
	svc *app.Service
	out io.Writer
}

func (c *cli) role(ctx context.Context, action string, args []string) error {
	switch action {
	case "create":
		fs := flag.NewFlagSet("role create", flag.ContinueOnError)
		name := fs.String("name", "", "role name")
		description := fs.String("description", "", "role description")
		notes := fs.String("notes", "", "persona notes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := c.svc.CreateRole(ctx, role.CreateInput{
			Name:        *name,
			Description: *description,
			Notes:       *notes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "created role %s (%s)\n", created.Name, created.ID)
		return nil

	case "list":
		roles, err := c.svc.ListRoles(ctx)
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			fmt.Fprintln(c.out, "no roles")
			return nil
		}
		for _, r := range roles {
			fmt.Fprintf(c.out, "%s\t%s\t%s\n", r.ID, r.Name, r.Description)
		}
		return nil

	case "delete":
		fs := flag.NewFlagSet("role delete", flag.ContinueOnError)
		id := fs.String("id", "", "role id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := c.svc.DeleteRole(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted role %s\n", *id)
		return nil

	case "identity":
		fs := flag.NewFlagSet("role identity", flag.ContinueOnError)
		id := fs.String("id", "", "role id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		doc, err := c.svc.RoleIdentity(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, doc)
		return nil

	default:
		return fmt.Errorf("unknown role action %q\n\n%s", action, usage)
	}
}

func (c *cli) meeting(ctx context.Context, action string, args []string) error {
	switch action {
	case "create":
		fs := flag.NewFlagSet("meeting create", flag.ContinueOnError)
		topic := fs.String("topic", "", "discussion topic")
		roles := fs.String("roles", "", "comma-separated role ids in speaking order")
		rounds := fs.Int("rounds", 0, "round budget (default 3)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := c.svc.CreateMeeting(ctx, meeting.CreateInput{
			Topic:   *topic,
			RoleIDs: splitList(*roles),
			Rounds:  *rounds,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "created meeting %s (%d participants, %d rounds)\n", created.ID, len(created.RoleIDs), created.Rounds)
		return nil

	case "list":
		meetings, err := c.svc.ListMeetings(ctx)
		if err != nil {
			return err
		}
		if len(meetings) == 0 {
			fmt.Fprintln(c.out, "no meetings")
			return nil
		}
		for _, m := range meetings {
			fmt.Fprintf(c.out, "%s\t%s\t%s\n", m.ID, m.Status, m.Topic)
		}
		return nil

	case "get":
		id, err := parseID(args, "meeting get")
		if err != nil {
			return err
		}
		m, err := c.svc.GetMeeting(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "meeting %s\n  topic: %s\n  status: %s\n  rounds: %d\n  participants: %s\n",
			m.ID, m.Topic, m.Status, m.Rounds, strings.Join(m.RoleIDs, ", "))
		return nil

	case "delete":
		id, err := parseID(args, "meeting delete")
		if err != nil {
			return err
		}
		if err := c.svc.DeleteMeeting(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted meeting %s\n", id)
		return nil

	case "topic":
		fs := flag.NewFlagSet("meeting topic", flag.ContinueOnError)
		id := fs.String("id", "", "meeting id")
		topic := fs.String("topic", "", "replacement topic")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if _, err := c.svc.UpdateTopic(ctx, *id, *topic); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "updated topic of %s\n", *id)
		return nil

	case "rounds":
		fs := flag.NewFlagSet("meeting rounds", flag.ContinueOnError)
		id := fs.String("id", "", "meeting id")
		rounds := fs.Int("rounds", 0, "new round budget")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if _, err := c.svc.UpdateRounds(ctx, *id, *rounds); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "updated round budget of %s to %d\n", *id, *rounds)
		return nil

	case "add":
		id, roleID, err := parseIDAndRole(args, "meeting add")
		if err != nil {
			return err
		}
		if _, err := c.svc.AddParticipant(ctx, id, roleID); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "added %s to %s\n", roleID, id)
		return nil

	case "remove":
		id, roleID, err := parseIDAndRole(args, "meeting remove")
		if err != nil {
			return err
		}
		if _, err := c.svc.RemoveParticipant(ctx, id, roleID); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "removed %s from %s\n", roleID, id)
		return nil

	case "start":
		id, err := parseID(args, "meeting start")
		if err != nil {
			return err
		}
		if c.cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("ROUNDTABLE_OPENAI_API_KEY is required to run meetings")
		}
		outcome, err := c.svc.Start(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, outcome)
		return nil

	case "continue":
		fs := flag.NewFlagSet("meeting continue", flag.ContinueOnError)
		id := fs.String("id", "", "meeting id")
		rounds := fs.Int("rounds", 1, "additional rounds")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if c.cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("ROUNDTABLE_OPENAI_API_KEY is required to run meetings")
		}
		outcome, err := c.svc.Continue(ctx, *id, *rounds)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, outcome)
		return nil

	case "status":
		id, err := parseID(args, "meeting status")
		if err != nil {
			return err
		}
		view, err := c.svc.MeetingStatus(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "meeting %s\n  topic: %s\n  status: %s\n", view.MeetingID, view.Topic, view.Status)
		if view.Consensus != "" {
			fmt.Fprintf(c.out, "  consensus: %s\n", view.Consensus)
		}
		if view.Conclusion != "" {
			fmt.Fprintf(c.out, "  conclusion: %s\n", view.Conclusion)
		}
		return nil

	case "minutes":
		id, err := parseID(args, "meeting minutes")
		if err != nil {
			return err
		}
		minutes, err := c.svc.MeetingMinutes(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, minutes)
		return nil

	case "followup":
		fs := flag.NewFlagSet("meeting followup", flag.ContinueOnError)
		id := fs.String("id", "", "completed source meeting id")
		topic := fs.String("topic", "", "follow-up topic")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := c.svc.Followup(ctx, *id, *topic)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "created follow-up meeting %s\n", created.ID)
		return nil

	default:
		return fmt.Errorf("unknown meeting action %q\n\n%s", action, usage)
	}
}

func parseID(args []string, name string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "meeting id")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *id, nil
}

func parseIDAndRole(args []string, name string) (string, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "meeting id")
	roleID := fs.String("role", "", "role id")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	return *id, *roleID, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
