package nftexec

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grimm.is/nftjson"
)

func TestGetRulesetParsesOutput(t *testing.T) {
	output := []byte(`{"nftables":[
		{"metainfo":{"version":"1.0.9","json_schema_version":1}},
		{"table":{"family":"inet","name":"filter"}}
	]}`)
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "list", "ruleset").
		Return(output, []byte(nil), 0, nil)

	client := New(Options{Runner: runner})
	rs, err := client.GetRuleset(context.Background())
	require.NoError(t, err)
	require.Len(t, rs.Items, 2)
	assert.Equal(t, nftjson.Table{Family: nftjson.FamilyINet, Name: "filter"}, rs.Items[1])
	runner.AssertExpectations(t)
}

func TestApplyRulesetPipesDocumentToStdin(t *testing.T) {
	runner := new(MockCommandRunner)
	var gotStdin []byte
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "-f", "-").
		Run(func(args mock.Arguments) {
			gotStdin = args.Get(1).([]byte)
		}).
		Return([]byte(nil), []byte(nil), 0, nil)

	client := New(Options{Runner: runner})
	rs := &nftjson.Ruleset{Items: []nftjson.Item{
		nftjson.Add{Object: nftjson.Table{Family: nftjson.FamilyIP, Name: "filter"}},
	}}
	require.NoError(t, client.ApplyRuleset(context.Background(), rs))

	want := `{"nftables":[{"add":{"table":{"family":"ip","name":"filter"}}}]}`
	assert.Equal(t, want, string(gotStdin))
	runner.AssertExpectations(t)
}

func TestNonZeroExitPreservesOutput(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "-f", "-").
		Return([]byte("partial"), []byte("Error: No such file or directory\n"), 1, nil).
		Once()

	client := New(Options{Runner: runner})
	err := client.ApplyRulesetRaw(context.Background(), []byte(`{"nftables":[]}`))
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr), "expected *CommandError, got %T", err)
	assert.Equal(t, "nft", cmdErr.Program)
	assert.Equal(t, "applying the ruleset", cmdErr.Hint)
	assert.Equal(t, 1, cmdErr.ExitCode)
	assert.Equal(t, "partial", cmdErr.Stdout)
	assert.Equal(t, "Error: No such file or directory\n", cmdErr.Stderr)

	// A failed apply is not retried.
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestLaunchFailureYieldsExecError(t *testing.T) {
	launchErr := errors.New(`exec: "nft": executable file not found in $PATH`)
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "list", "ruleset").
		Return([]byte(nil), []byte(nil), -1, launchErr)

	client := New(Options{Runner: runner})
	_, err := client.GetRuleset(context.Background())
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "nft", execErr.Program)
	assert.ErrorIs(t, err, launchErr)
}

func TestInvalidUTF8OutputIsRejected(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "list", "ruleset").
		Return([]byte{0xff, 0xfe, 0xfd}, []byte(nil), 0, nil)

	client := New(Options{Runner: runner})
	_, err := client.GetRuleset(context.Background())
	require.Error(t, err)

	var outErr *OutputError
	require.True(t, errors.As(err, &outErr))
	assert.Equal(t, "stdout", outErr.Stream)
}

func TestOptionsOverrideProgramAndArgs(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "/usr/sbin/nft", "--numeric", "-j", "list", "ruleset").
		Return([]byte(`{"nftables":[]}`), []byte(nil), 0, nil)

	client := New(Options{
		Program: "/usr/sbin/nft",
		Args:    []string{"--numeric"},
		Runner:  runner,
	})
	rs, err := client.GetRuleset(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rs.Items)
	runner.AssertExpectations(t)
}

func TestMalformedRulesetOutputSurfacesDecodeError(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, mock.Anything, "nft", "-j", "list", "ruleset").
		Return([]byte(`{"nftables":[{"table":{"family":"bogus","name":"t"}}]}`), []byte(nil), 0, nil)

	client := New(Options{Runner: runner})
	_, err := client.GetRuleset(context.Background())
	require.Error(t, err)

	var de *nftjson.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ".nftables[0].table.family", de.Path)
}
