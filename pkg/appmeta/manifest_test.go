package appmeta_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/bento-build/bento/pkg/appmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest(t *testing.T) {
	out, err := appmeta.Manifest("Edge TTS Desktop", "2.3")
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	assembly := doc.SelectElement("assembly")
	require.NotNil(t, assembly)
	assert.Equal(t, "1.0", assembly.SelectAttrValue("manifestVersion", ""))

	identity := assembly.SelectElement("assemblyIdentity")
	require.NotNil(t, identity)
	assert.Equal(t, "Edge.TTS.Desktop", identity.SelectAttrValue("name", ""))
	assert.Equal(t, "2.3.0.0", identity.SelectAttrValue("version", ""))

	// Themed common controls dependency is always declared
	dep := assembly.FindElement("dependency/dependentAssembly/assemblyIdentity")
	require.NotNil(t, dep)
	assert.Equal(t, "Microsoft.Windows.Common-Controls", dep.SelectAttrValue("name", ""))

	dpi := assembly.FindElement("application/windowsSettings/dpiAware")
	require.NotNil(t, dpi)
	assert.Equal(t, "true", dpi.Text())
}

func TestManifest_EmptyName(t *testing.T) {
	_, err := appmeta.Manifest("", "1.0")
	assert.Error(t, err)
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1.0.0.0"},
		{"1.2", "1.2.0.0"},
		{"1.2.3", "1.2.3.0"},
		{"1.2.3.4", "1.2.3.4"},
		{"1.2.3.4.5", "1.2.3.4"},
		{"", "0.0.0.0"},
		{"2.x.1", "2.0.1.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, appmeta.NormalizeVersion(tt.in), "input %q", tt.in)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "App.exe.manifest", appmeta.FileName("App.exe"))
}
