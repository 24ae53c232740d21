package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
	"github.com/yonghwan1106/e-ansimcare/internal/client"
)

var chatServer string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the help-desk chatbot",
	Long: `Starts an interactive help-desk conversation on stdin.

Type a question, or the number of a quick-reply option. Commands:
  /reset   start over
  /good    mark the last answer helpful
  /bad     mark the last answer unhelpful
  /quit    leave`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatServer, "server", "", "Chat through a running API server")
}

// chatBackend is one conversation, local or remote.
type chatBackend interface {
	start(ctx context.Context) (chatbot.Message, error)
	send(ctx context.Context, text string) (chatbot.Message, error)
	choose(ctx context.Context, key chatbot.NodeKey) (chatbot.Message, error)
	reset(ctx context.Context) (chatbot.Message, error)
	feedback(ctx context.Context, msgID string, f chatbot.Feedback) error
}

type localChat struct{ sess *chatbot.Session }

func (l *localChat) start(context.Context) (chatbot.Message, error) {
	l.sess = chatbot.NewSession(time.Now)
	h := l.sess.History()
	return h[len(h)-1], nil
}

func (l *localChat) send(_ context.Context, text string) (chatbot.Message, error) {
	t, err := l.sess.Send(text)
	return t.Bot, err
}

func (l *localChat) choose(_ context.Context, key chatbot.NodeKey) (chatbot.Message, error) {
	return l.sess.Choose(key).Bot, nil
}

func (l *localChat) reset(context.Context) (chatbot.Message, error) {
	return l.sess.Reset(), nil
}

func (l *localChat) feedback(_ context.Context, id string, f chatbot.Feedback) error {
	_, err := l.sess.Feedback(id, f)
	return err
}

type remoteChat struct {
	c  *client.Client
	id string
}

func (r *remoteChat) start(ctx context.Context) (chatbot.Message, error) {
	s, err := r.c.CreateChat(ctx)
	if err != nil {
		return chatbot.Message{}, err
	}
	r.id = s.SessionID
	return s.Messages[len(s.Messages)-1], nil
}

func (r *remoteChat) send(ctx context.Context, text string) (chatbot.Message, error) {
	t, err := r.c.SendChat(ctx, r.id, text)
	return t.Bot, err
}

func (r *remoteChat) choose(ctx context.Context, key chatbot.NodeKey) (chatbot.Message, error) {
	t, err := r.c.ChooseChat(ctx, r.id, key)
	return t.Bot, err
}

func (r *remoteChat) reset(ctx context.Context) (chatbot.Message, error) {
	s, err := r.c.ResetChat(ctx, r.id)
	if err != nil {
		return chatbot.Message{}, err
	}
	return s.Messages[len(s.Messages)-1], nil
}

func (r *remoteChat) feedback(ctx context.Context, id string, f chatbot.Feedback) error {
	_, err := r.c.ChatFeedback(ctx, r.id, id, f)
	return err
}

func runChat(cmd *cobra.Command, args []string) error {
	var b chatBackend = &localChat{}
	if chatServer != "" {
		b = &remoteChat{c: client.New(chatServer, client.Options{Timeout: timeout, Logger: logger})}
	}
	return chatLoop(cmd.Context(), b, cmd.InOrStdin(), cmd.OutOrStdout())
}

func chatLoop(ctx context.Context, b chatBackend, in io.Reader, out io.Writer) error {
	last, err := b.start(ctx)
	if err != nil {
		return err
	}
	printBot(out, last)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			last, err = b.reset(ctx)
		case "/good", "/bad":
			f := chatbot.FeedbackPositive
			if line == "/bad" {
				f = chatbot.FeedbackNegative
			}
			if err := b.feedback(ctx, last.ID, f); err != nil {
				return err
			}
			fmt.Fprintln(out, "(feedback recorded)")
			continue
		default:
			if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(last.Options) {
				last, err = b.choose(ctx, last.Options[n-1].Value)
			} else {
				last, err = b.send(ctx, line)
			}
		}
		if err != nil {
			return err
		}
		printBot(out, last)
	}
}

func printBot(out io.Writer, m chatbot.Message) {
	fmt.Fprintln(out, m.Content)
	for i, o := range m.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, o.Label)
	}
}
