package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rexlx/academicoqa/forum"
	"github.com/rexlx/academicoqa/localstore"
)

var (
	resolvedMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	tagStyle     = color.New(color.FgCyan).SprintFunc()
	faint        = color.New(color.Faint).SprintFunc()
	teacherStyle = color.New(color.FgYellow).SprintFunc()
)

var errLoginFailed = errors.New("email ou senha inválidos")

func (a *app) questionsCmd() *cobra.Command {
	var search, tag, status, sortKey string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List questions matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := forum.ParseStatus(status)
			if err != nil {
				return err
			}
			sk, err := forum.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			cfg := forum.FilterConfig{SearchTerm: search, SelectedTag: tag, Status: st, SortKey: sk}
			visible := forum.NewSeededContentStore().Visible(cfg)
			renderQuestions(cmd.OutOrStdout(), visible, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring of title, content or tag")
	cmd.Flags().StringVarP(&tag, "tag", "t", forum.AllTags, "only questions with this tag")
	cmd.Flags().StringVar(&status, "status", string(forum.StatusAll), "all, resolved or unresolved")
	cmd.Flags().StringVar(&sortKey, "sort", string(forum.SortRecent), "recent, likes or answers")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			store := forum.NewSeededContentStore()
			q, err := store.Question(id)
			if err != nil {
				return err
			}
			comments, err := store.Comments(id)
			if err != nil {
				return err
			}
			renderQuestion(cmd.OutOrStdout(), q, comments, time.Now())
			return nil
		},
	}
}

func (a *app) suggestCmd() *cobra.Command {
	var chosen []string
	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest tags for a question body",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vocabulary := forum.NewSeededContentStore().Tags()
			for _, t := range forum.SuggestTags(strings.Join(args, " "), vocabulary, chosen) {
				fmt.Fprintln(cmd.OutOrStdout(), tagStyle(t))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&chosen, "chosen", nil, "tags already on the draft")
	return cmd
}

// withSession opens the local state file and restores the CLI session.
func (a *app) withSession(ctx context.Context, fn func(*forum.Session) error) error {
	store, err := localstore.Open(a.cfg.StatePath, forum.SessionKey)
	if err != nil {
		return err
	}
	defer store.Close()

	dir, err := forum.NewDirectory(a.cfg.BcryptCost)
	if err != nil {
		return err
	}
	s := forum.NewSession(ctx, dir, store,
		forum.WithAuthDelay(a.cfg.AuthDelay),
		forum.WithLogger(a.logger),
	)
	return fn(s)
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *forum.Session) error {
				if !s.Login(cmd.Context(), email, password) {
					return errLoginFailed
				}
				id, _ := s.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "Olá, %s\n", id.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *forum.Session) error {
				if !s.Register(cmd.Context(), name, email, password, forum.Role(role)) {
					return errors.New("não foi possível criar a conta")
				}
				id, _ := s.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "Conta criada: %s (%s)\n", id.Name, id.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(forum.RoleStudent), "student or teacher")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *forum.Session) error {
				s.Logout(cmd.Context())
				return nil
			})
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(s *forum.Session) error {
				id, ok := s.Current()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "não autenticado")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", id.Name, id.Email, roleLabel(id.Role))
				return nil
			})
		},
	}
}

func roleLabel(r forum.Role) string {
	if r == forum.RoleTeacher {
		return teacherStyle("Professor")
	}
	return "Aluno"
}

func renderQuestions(w io.Writer, questions []forum.Question, now time.Time) {
	suffix := "s"
	if len(questions) == 1 {
		suffix = ""
	}
	fmt.Fprintf(w, "%d pergunta%s\n\n", len(questions), suffix)
	for _, q := range questions {
		mark := " "
		if q.IsResolved {
			mark = resolvedMark("✓")
		}
		fmt.Fprintf(w, "%s #%d %s\n", mark, q.ID, q.Title)
		tags := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			tags = append(tags, tagStyle(t))
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(tags, " "))
		fmt.Fprintf(w, "    %s %s · %s · %d curtidas · %d respostas\n\n",
			q.Author, roleLabel(q.AuthorRole), faint(forum.FormatDisplayDate(q.LastActivity, now)), q.Likes, q.Answers)
	}
}

func renderQuestion(w io.Writer, q forum.Question, comments []forum.Comment, now time.Time) {
	renderQuestions(w, []forum.Question{q}, now)
	fmt.Fprintln(w, q.Content)
	fmt.Fprintln(w)
	for _, c := range comments {
		mark := " "
		if c.IsAccepted {
			mark = resolvedMark("✓")
		}
		fmt.Fprintf(w, "%s %s %s · %s · %d curtidas\n", mark, c.Author, roleLabel(c.AuthorRole),
			faint(forum.FormatDisplayDate(c.CreatedAt, now)), c.Likes)
		fmt.Fprintf(w, "  %s\n\n", strings.ReplaceAll(c.Content, "\n", "\n  "))
	}
}
