package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyStage(t *testing.T) {
	s := NewStore()
	s.RegisterManipulator("disk", appendStage("team/template.html.erb"), 10)
	s.RegisterManipulatorDefault("proxies", NewProxyStage([]ProxyRoute{
		{
			Destination: "/team/alice.html",
			Target:      "team/template.html.erb",
			Locals:      map[string]interface{}{"name": "Alice"},
		},
	}))

	r, err := s.FindByDestinationPath("team/alice.html")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "team/template.html.erb", r.ProxySource)
	assert.Equal(t, "Alice", r.Metadata.Locals["name"])

	// proxied target keeps its own resource
	target, err := s.FindByPath("team/template.html.erb")
	require.NoError(t, err)
	assert.NotNil(t, target)
}

func TestRedirectStage(t *testing.T) {
	s := NewStore()
	s.RegisterManipulatorDefault("redirects", NewRedirectStage([]Redirect{
		{From: "old/page.html", To: "/new/page.html"},
	}))

	r, err := s.FindByDestinationPath("old/page.html")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "/new/page.html", r.Metadata.Options["redirect_to"])
}
