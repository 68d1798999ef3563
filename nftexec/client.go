package nftexec

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"

	"grimm.is/nftjson"
)

const (
	hintList  = "listing the current ruleset"
	hintApply = "applying the ruleset"
)

// Client runs nft with a fixed program path and base arguments.
type Client struct {
	program string
	args    []string
	runner  CommandRunner
	log     *slog.Logger
}

// Options configures a Client. The zero value selects the nft binary from
// PATH, no extra arguments, the real process runner and a no-op logger.
type Options struct {
	// Program is the nft binary to run. Defaults to DefaultProgram.
	Program string
	// Args are inserted before the per-call arguments, e.g. to pass
	// --numeric or a custom include path.
	Args []string
	// Runner substitutes the process executor, mainly for tests.
	Runner CommandRunner
	// Logger receives one debug entry per nft invocation.
	Logger *slog.Logger
}

// New returns a Client for the given options.
func New(opts Options) *Client {
	c := &Client{
		program: opts.Program,
		args:    opts.Args,
		runner:  opts.Runner,
		log:     opts.Logger,
	}
	if c.program == "" {
		c.program = DefaultProgram
	}
	if c.runner == nil {
		c.runner = DefaultCommandRunner
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// GetRuleset lists the current ruleset as a parsed document.
func (c *Client) GetRuleset(ctx context.Context) (*nftjson.Ruleset, error) {
	out, err := c.GetRulesetRaw(ctx)
	if err != nil {
		return nil, err
	}
	return nftjson.Unmarshal(out)
}

// GetRulesetRaw lists the current ruleset and returns the wire JSON without
// parsing it.
func (c *Client) GetRulesetRaw(ctx context.Context) ([]byte, error) {
	return c.run(ctx, nil, hintList, "-j", "list", "ruleset")
}

// ApplyRuleset applies the document in one atomic nft transaction.
func (c *Client) ApplyRuleset(ctx context.Context, rs *nftjson.Ruleset) error {
	payload, err := nftjson.Marshal(rs)
	if err != nil {
		return err
	}
	return c.ApplyRulesetRaw(ctx, payload)
}

// ApplyRulesetRaw pipes pre-encoded wire JSON to nft.
func (c *Client) ApplyRulesetRaw(ctx context.Context, payload []byte) error {
	_, err := c.run(ctx, payload, hintApply, "-j", "-f", "-")
	return err
}

func (c *Client) run(ctx context.Context, stdin []byte, hint string, args ...string) ([]byte, error) {
	argv := make([]string, 0, len(c.args)+len(args))
	argv = append(argv, c.args...)
	argv = append(argv, args...)
	c.log.DebugContext(ctx, "running nft", "program", c.program, "args", argv)
	stdout, stderr, exit, err := c.runner.Run(ctx, stdin, c.program, argv...)
	if err != nil {
		return nil, &ExecError{Program: c.program, Err: err}
	}
	if !utf8.Valid(stdout) {
		return nil, &OutputError{Program: c.program, Stream: "stdout"}
	}
	if !utf8.Valid(stderr) {
		return nil, &OutputError{Program: c.program, Stream: "stderr"}
	}
	if exit != 0 {
		return nil, &CommandError{
			Program:  c.program,
			Hint:     hint,
			ExitCode: exit,
			Stdout:   string(stdout),
			Stderr:   string(stderr),
		}
	}
	return stdout, nil
}

// GetRuleset lists the current ruleset using a default Client.
func GetRuleset(ctx context.Context) (*nftjson.Ruleset, error) {
	return New(Options{}).GetRuleset(ctx)
}

// ApplyRuleset applies the document using a default Client.
func ApplyRuleset(ctx context.Context, rs *nftjson.Ruleset) error {
	return New(Options{}).ApplyRuleset(ctx, rs)
}
