package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextStripsTags(t *testing.T) {
	require.Equal(t, "standup notes", Text("<b>standup</b> notes"))
	require.Equal(t, "", Text("<script>alert('x')</script>"))
	require.Equal(t, "pairing with QA", Text(`<a href="javascript:alert(1)">pairing with QA</a>`))
}

func TestTextPassesPlainText(t *testing.T) {
	require.Equal(t, "review sprint board", Text("review sprint board"))
	require.Equal(t, "", Text(""))
}
