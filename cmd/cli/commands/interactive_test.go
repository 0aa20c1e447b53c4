package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"plain", "addMember ABC123 bob", []string{"addMember", "ABC123", "bob"}, false},
		{"double quotes", `defineGroup "Book club" alice`, []string{"defineGroup", "Book club", "alice"}, false},
		{"single quotes", `defineGroup 'Book club' alice`, []string{"defineGroup", "Book club", "alice"}, false},
		{"empty quotes", `listBlocks "" bob`, []string{"listBlocks", "", "bob"}, false},
		{"extra spaces", "  viewSlots   ABC123  ", []string{"viewSlots", "ABC123"}, false},
		{"unclosed", `defineGroup "Book club`, nil, true},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// testRoot builds a root command with an echo command that records its input
func testRoot(calls *[]string) *cobra.Command {
	root := &cobra.Command{Use: "planner"}
	echo := &cobra.Command{
		Use:   "echo <word>",
		Short: "Record a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upper, _ := cmd.Flags().GetBool("upper")
			word := args[0]
			if upper {
				word = strings.ToUpper(word)
			}
			if word == "fail" {
				return errors.New("echo failed")
			}
			*calls = append(*calls, word)
			return nil
		},
	}
	echo.Flags().Bool("upper", false, "")
	root.AddCommand(echo)
	root.AddCommand(&cobra.Command{Use: "interactive", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestSession_Run(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	s := newSession(testRoot(&calls), &out, zap.NewNop())

	input := strings.Join([]string{
		"echo --upper hi",
		"echo there",
		"",
		"echo",
		"echo fail",
		"nope",
		"help",
		"quit",
		"echo never",
	}, "\n")

	require.NoError(t, s.run(strings.NewReader(input)))

	// the flag from the first line does not leak into the second
	assert.Equal(t, []string{"HI", "there"}, calls)
	assert.Contains(t, out.String(), "echo failed")
	assert.Contains(t, out.String(), "Unknown command: nope")
	assert.Contains(t, out.String(), "Record a word")
	assert.Contains(t, out.String(), "Goodbye")
	assert.NotContains(t, out.String(), "  interactive")
}

func TestSession_EndOfInput(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	s := newSession(testRoot(&calls), &out, zap.NewNop())

	require.NoError(t, s.run(strings.NewReader("echo last")))
	assert.Equal(t, []string{"last"}, calls)
	assert.NotContains(t, out.String(), "Goodbye")
}
