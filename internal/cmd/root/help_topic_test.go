package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmeckel/m365-cli/internal/iostreams"
)

func TestHelpTopicPlainOutput(t *testing.T) {
	io, _, stdout, _ := iostreams.Test()

	var output helpTopic
	for _, ht := range HelpTopics {
		if ht.name == "output" {
			output = ht
		}
	}

	cmd := NewCmdHelpTopic(io, output)
	cmd.HelpFunc()(cmd, nil)

	got := stdout.String()
	assert.Contains(t, got, "# Output formats")
	assert.Contains(t, got, "`--output`")
	assert.Contains(t, got, "EXAMPLES\n  $ m365 graph changelog list --versions v1.0 --output text\n")
}

func TestHelpTopicUsage(t *testing.T) {
	io, _, _, stderr := iostreams.Test()

	cmd := NewCmdHelpTopic(io, HelpTopics[1])
	assert.NoError(t, cmd.Usage())
	assert.Equal(t, "Usage: m365 help exit-codes", stderr.String())
}

func TestHelpTopicsHaveNoFormattingVerbsLeft(t *testing.T) {
	io, _, _, _ := iostreams.Test()
	for _, ht := range HelpTopics {
		cmd := NewCmdHelpTopic(io, ht)
		assert.NotContains(t, cmd.Long, "%!", ht.name)
	}
}
