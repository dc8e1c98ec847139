// nimchat is a smoke-test CLI for the NIM chat client: it constructs the
// best available transport via the factory and issues a single chat call.
// Any failure is reported on stderr and exits non-zero.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepfish-labs/nimclient"
	"github.com/deepfish-labs/nimclient/chat"
)

const defaultPrompt = "Say 'Hello from NVIDIA!' in exactly 5 words."

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type flags struct {
	model    string
	system   string
	stream   bool
	thinking bool
	fallback bool
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "nimchat [prompt]",
		Short:         "Send a single chat request to the NVIDIA NIM API",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := defaultPrompt
			if len(args) == 1 {
				prompt = args[0]
			}

			client, err := nimclient.Create(!f.fallback)
			if err != nil {
				return err
			}
			fmt.Printf("created client: %T\n", client)

			ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
			defer cancel()
			return run(ctx, client, prompt, f)
		},
	}

	cmd.Flags().StringVar(&f.model, "model", "", "model id (default: fast tier)")
	cmd.Flags().StringVar(&f.system, "system", "", "system prompt")
	cmd.Flags().BoolVar(&f.stream, "stream", false, "stream the response")
	cmd.Flags().BoolVar(&f.thinking, "thinking", false, "stream with visible chain of thought")
	cmd.Flags().BoolVar(&f.fallback, "fallback", false, "force the plain HTTPS transport")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 60*time.Second, "overall call timeout")

	return cmd
}

func run(ctx context.Context, client chat.Client, prompt string, f flags) error {
	withOpts := func(o *chat.Options) {
		if f.model != "" {
			o.Model = f.model
		}
		if f.system != "" {
			o.SystemPrompt = f.system
		}
	}

	if f.stream || f.thinking {
		sc, ok := client.(chat.StreamingClient)
		if !ok {
			return fmt.Errorf("the active transport does not support streaming")
		}
		var (
			s   chat.Stream
			err error
		)
		if f.thinking {
			s, err = sc.ChatWithThinking(ctx, prompt, withOpts)
		} else {
			s, err = sc.ChatStream(ctx, prompt, withOpts)
		}
		if err != nil {
			return err
		}
		defer s.Close()
		for s.Next() {
			fmt.Print(s.Current())
		}
		fmt.Println()
		return s.Err()
	}

	// Smoke-test default: one fast-tier call.
	var (
		out string
		err error
	)
	if f.model == "" && f.system == "" {
		out, err = client.QuickChat(ctx, prompt)
	} else {
		out, err = client.Chat(ctx, prompt, withOpts)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
