package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/app"
	"github.com/kurihiro0119/github-portfolio/internal/clipboard"
	"github.com/kurihiro0119/github-portfolio/internal/config"
	"github.com/kurihiro0119/github-portfolio/internal/contact"
	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
	"github.com/kurihiro0119/github-portfolio/internal/filter"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
	"github.com/kurihiro0119/github-portfolio/pkg/client"
)

var (
	outputJSON   bool
	useRemote    bool
	searchTerm   string
	filterMode   string
	listingLimit int
	contactName  string
	contactEmail string
	contactBody  string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "GitHub portfolio tool",
	Long: `A CLI tool for browsing the GitHub repositories shown on the portfolio site.

It loads the public profile and repositories of the configured user, either
directly from GitHub or from a running portfolio server (--remote).`,
	SilenceUsage: true,
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories",
	Long:  `Display the repositories matching a search term and filter (all, starred, archived, recent).`,
	Args:  cobra.NoArgs,
	RunE:  runRepos,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show terminal stats",
	Long:  `Display the directory-style listing and the language histogram.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Play the typing animation",
	Long:  `Type the portfolio paragraphs, then loop through the fake shell commands until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runTerminal,
}

var copyCmd = &cobra.Command{
	Use:   "copy [repo]",
	Short: "Copy a repository clone URL",
	Long:  `Copy the clone URL of a repository to the system clipboard.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

var mailtoCmd = &cobra.Command{
	Use:   "mailto",
	Short: "Compose a contact mailto link",
	Args:  cobra.NoArgs,
	RunE:  runMailto,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&useRemote, "remote", false, "read from the portfolio server at API_ENDPOINT")

	reposCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "case-insensitive search on name, description and language")
	reposCmd.Flags().StringVarP(&filterMode, "filter", "f", "all", "filter: all, starred, archived, recent")
	statsCmd.Flags().IntVar(&listingLimit, "limit", aggregator.DefaultListingLimit, "number of repositories in the listing")
	mailtoCmd.Flags().StringVar(&contactName, "name", "", "your name")
	mailtoCmd.Flags().StringVar(&contactEmail, "email", "", "your email")
	mailtoCmd.Flags().StringVar(&contactBody, "message", "", "message body")

	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(terminalCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(mailtoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func newRemoteClient() (*client.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return client.NewClient(cfg.APIEndpoint), cfg, nil
}

// loadPortfolio runs one load cycle against GitHub
func loadPortfolio(ctx context.Context) (*app.App, *domain.Portfolio, error) {
	a, err := app.Load()
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintln(os.Stderr, a.Locale.Messages.Loading)
	p, err := a.Store.Current(ctx)
	if err != nil {
		return nil, nil, describeLoadError(a.Locale, err)
	}
	return a, p, nil
}

func describeLoadError(loc *locale.Locale, err error) error {
	if apperrors.IsFetchError(err) {
		return fmt.Errorf("%s %s (%w)", loc.Messages.LoadError, loc.Messages.LoadErrorHint, err)
	}
	return err
}

func runRepos(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	state := domain.FilterState{
		SearchTerm: searchTerm,
		Mode:       domain.ParseFilterMode(filterMode),
	}

	var repos []*domain.Repository
	var loc *locale.Locale
	var tz *time.Location
	if useRemote {
		c, cfg, err := newRemoteClient()
		if err != nil {
			return err
		}
		loc, tz = locale.Lookup(cfg.Locale), cfg.Location()
		if repos, err = c.GetRepos(ctx, state); err != nil {
			return fmt.Errorf("failed to get repositories: %w", err)
		}
	} else {
		a, p, err := loadPortfolio(ctx)
		if err != nil {
			return err
		}
		loc, tz = a.Locale, a.Config.Location()
		repos = filter.VisibleSet(p.Repos, state)
	}

	if outputJSON {
		return printJSON(repos)
	}

	if len(repos) == 0 {
		fmt.Println(loc.Messages.NoResults)
		return nil
	}

	fmt.Printf("\n%s\n\n", titleStyle.Render(fmt.Sprintf("Repositories (%s)", state.Mode)))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Language", "Stars", "Forks", loc.Messages.Updated, "Archived"})
	for _, r := range repos {
		table.Append(repoRow(r, loc, tz))
	}
	table.Render()

	return nil
}

// repoRow formats one table row, showing the update date in tz
func repoRow(r *domain.Repository, loc *locale.Locale, tz *time.Location) []string {
	archived := ""
	if r.Archived {
		archived = loc.Messages.Archived
	}
	return []string{
		r.Name,
		r.Language,
		strconv.Itoa(r.Stars),
		strconv.Itoa(r.Forks),
		loc.ShortDate(r.UpdatedAt.In(tz)),
		archived,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var stats *aggregator.Stats
	if useRemote {
		c, _, err := newRemoteClient()
		if err != nil {
			return err
		}
		if stats, err = c.GetStats(ctx, listingLimit); err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
	} else {
		a, p, err := loadPortfolio(ctx)
		if err != nil {
			return err
		}
		stats = a.Projector.Project(p.Profile, p.Repos, listingLimit)
	}

	if outputJSON {
		return printJSON(stats)
	}

	fmt.Println(titleStyle.Render("$ ls -la ~/projects"))
	fmt.Println(stats.Listing)
	fmt.Println(infoStyle.Render(stats.Summary))
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	a, p, err := loadPortfolio(ctx)
	if err != nil {
		return err
	}

	repo, ok := p.FindRepository(name)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("repository %q", name))
	}

	copier := clipboard.NewCopier(os.Stdout, a.Locale.Messages.Copied, a.Logger)
	if err := copier.Copy(ctx, repo.CloneURL); err != nil {
		// Already logged; a failed copy does not fail the command
		fmt.Println(repo.CloneURL)
	}
	return nil
}

func runMailto(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	composer := &contact.Composer{To: content.ContactEmail, Subject: content.ContactSubject}
	link, err := composer.BuildMailto(contact.Message{
		Name:    contactName,
		Email:   contactEmail,
		Message: contactBody,
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]string{"mailto": link})
	}
	fmt.Println(link)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
