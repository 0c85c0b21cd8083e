// chatcli 在终端里运行与网页相同的聊天控制器，便于脱离前端调试会话与回复逻辑。
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/querydesk/backend/internal/config"
	"github.com/zhouzirui/querydesk/backend/internal/logging"
	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	chatservice "github.com/zhouzirui/querydesk/backend/internal/service/chat"
)

type options struct {
	delayMin time.Duration
	delayMax time.Duration
	verbose  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "chatcli",
		Short:         "Chat with the simulated BigQuery assistant from a terminal",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.delayMin, "delay-min", 0, "minimum reply delay (default from CHAT_RESPONSE_DELAY_MIN)")
	cmd.Flags().DurationVar(&opts.delayMax, "delay-max", 0, "maximum reply delay (default from CHAT_RESPONSE_DELAY_MAX)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log controller diagnostics to stderr")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}
	if cmd.Flags().Changed("delay-min") {
		cfg.Chat.ResponseDelayMin = opts.delayMin
	}
	if cmd.Flags().Changed("delay-max") {
		cfg.Chat.ResponseDelayMax = opts.delayMax
	}
	if cfg.Chat.ResponseDelayMax < cfg.Chat.ResponseDelayMin {
		return fmt.Errorf("delay-max %s is below delay-min %s", cfg.Chat.ResponseDelayMax, cfg.Chat.ResponseDelayMin)
	}

	logCfg := cfg.Log
	logCfg.Pretty = true
	if !opts.verbose {
		logCfg.Level = "warn"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logCfg)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "› ",
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	view := newTermView(out, assistant.Default(), lipgloss.NewRenderer(os.Stdout))

	ctrl := chatservice.NewController(view,
		chatservice.WithCapacity(cfg.Chat.HistoryLimit),
		chatservice.WithDelay(chatservice.UniformDelay(cfg.Chat.ResponseDelayMin, cfg.Chat.ResponseDelayMax)),
		chatservice.WithLogger(logger),
	)
	defer ctrl.Close()

	view.notice("type /help for commands")
	return newREPL(ctrl, view, rl).run()
}
