package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"manifest.md":    {Data: []byte("# Manifest\n\nHow bento.toml works.\n")},
		"watch.txt":      {Data: []byte("Watch mode reruns assembly on changes.\n")},
		"notes/todo.org": {Data: []byte("ignored, unsupported extension\n")},
	}
}

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "bento"}
	root.AddCommand(&cobra.Command{Use: "assemble", Run: func(cmd *cobra.Command, args []string) {}})
	return root
}

func TestManagerScan(t *testing.T) {
	m := New(testFS(), Options{})
	require.NoError(t, m.scan())

	assert.Equal(t, []string{"manifest", "watch"}, m.List())

	topic, ok := m.Get("manifest")
	require.True(t, ok)
	assert.Contains(t, topic.Content, "bento.toml")

	_, ok = m.Get("todo")
	assert.False(t, ok, "unsupported extensions must be skipped")
}

func TestManagerGetFlagStyle(t *testing.T) {
	m := New(testFS(), Options{})
	require.NoError(t, m.scan())

	topic, ok := m.Get("--watch")
	require.True(t, ok)
	assert.Equal(t, "watch", topic.Name)
}

func TestInitializeHelpTopic(t *testing.T) {
	root := newTestRoot()
	require.NoError(t, Initialize(root, testFS(), Options{}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "watch"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "reruns assembly")
}

func TestInitializeHelpTopicsList(t *testing.T) {
	root := newTestRoot()
	require.NoError(t, Initialize(root, testFS(), Options{}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "manifest")
	assert.Contains(t, out.String(), "watch")
}

func TestInitializeFallsBackToCommandHelp(t *testing.T) {
	root := newTestRoot()
	require.NoError(t, Initialize(root, testFS(), Options{}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "assemble"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "assemble")
}

func TestGlamourRendererPassThrough(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Heading", r.Render("# Heading", ".md"))
}
