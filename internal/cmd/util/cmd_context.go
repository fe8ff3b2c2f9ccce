package util

import (
	"context"
	"os"

	"github.com/tmeckel/m365-cli/internal/auth"
	"github.com/tmeckel/m365-cli/internal/config"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/m365"
	"github.com/tmeckel/m365-cli/internal/prompter"
	"github.com/tmeckel/m365-cli/internal/util"
)

type CmdContext interface {
	Context() context.Context
	ClientFactory() m365.ClientFactory
	Prompter() (prompter.Prompter, error)
	Config() (config.Config, error)
	IOStreams() (*iostreams.IOStreams, error)
}

type cmdContext struct {
	ioStreams *iostreams.IOStreams
	prompter  prompter.Prompter
	ctx       context.Context
	cfg       config.Config
	factory   m365.ClientFactory
}

func NewCmdContext() (ctx CmdContext, err error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return
	}

	iostrms, err := newIOStreams(cfg)
	if err != nil {
		return
	}

	var opts []m365.FactoryOption
	if util.IsAPITraceEnabled() {
		opts = append(opts, m365.WithTrace(iostrms.ErrOut))
	}

	c := &cmdContext{
		ioStreams: iostrms,
		prompter:  prompter.New(iostrms.In, iostrms.Out, iostrms.ErrOut),
		ctx:       context.Background(),
		cfg:       cfg,
		factory:   m365.NewClientFactory(auth.NewProvider(cfg.Authentication()), opts...),
	}
	ctx = c
	return
}

// EnableAPITrace makes all clients created afterwards dump their HTTP traffic
// to stderr.
func EnableAPITrace(ctx CmdContext) {
	c, ok := ctx.(*cmdContext)
	if !ok {
		return
	}
	c.factory = m365.NewClientFactory(auth.NewProvider(c.cfg.Authentication()), m365.WithTrace(c.ioStreams.ErrOut))
}

func (c *cmdContext) Prompter() (p prompter.Prompter, err error) {
	p = c.prompter
	return
}

func (c *cmdContext) Context() (ctx context.Context) {
	ctx = c.ctx
	return
}

func (c *cmdContext) ClientFactory() m365.ClientFactory {
	return c.factory
}

func (c *cmdContext) Config() (cfg config.Config, err error) {
	cfg = c.cfg
	return
}

func (c *cmdContext) IOStreams() (*iostreams.IOStreams, error) {
	return c.ioStreams, nil
}

func newIOStreams(cfg config.Config) (*iostreams.IOStreams, error) {
	io := iostreams.System()

	if _, promptDisabled := os.LookupEnv("M365_PROMPT_DISABLED"); promptDisabled {
		io.SetNeverPrompt(true)
	} else if prompt, _ := cfg.GetOrDefault([]string{config.Prompt}); prompt == "disabled" {
		io.SetNeverPrompt(true)
	}

	if spinner, _ := cfg.GetOrDefault([]string{config.ShowSpinner}); spinner == "disabled" {
		io.SetProgressIndicatorEnabled(false)
	}

	// Pager precedence
	// 1. M365_PAGER
	// 2. pager from config
	// 3. PAGER
	if pager, pagerExists := os.LookupEnv("M365_PAGER"); pagerExists {
		io.SetPager(pager)
	} else if pager, _ := cfg.Get([]string{config.Pager}); pager != "" {
		io.SetPager(pager)
	}

	return io, nil
}
