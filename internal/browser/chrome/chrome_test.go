package chrome

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mykulyak/pagecheck/internal/browser"
	"github.com/mykulyak/pagecheck/internal/config"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		arg   string
		name  string
		value any
		ok    bool
	}{
		{"--no-sandbox", "no-sandbox", true, true},
		{"--lang=en-US", "lang", "en-US", true},
		{"window-position=0,0", "window-position", "0,0", true},
		{"--js-flags=--expose-gc=1", "js-flags", "--expose-gc=1", true},
		{"  ", "", nil, false},
		{"--", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			name, value, ok := parseFlag(tt.arg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestAllocatorOptions(t *testing.T) {
	cfg := &config.AppConfig{Browser: config.AppConfigBrowser{WindowWidth: 800, WindowHeight: 600}}
	base := len(allocatorOptions(cfg))

	cfg.Headless = true
	cfg.Browser.ExecPath = "/usr/bin/chromium"
	cfg.Browser.UserAgent = "pagecheck"
	cfg.Browser.Args = []string{"--no-sandbox", "", "--lang=de"}
	assert.Equal(t, base+2+1+1+2, len(allocatorOptions(cfg)))
}

func TestNewManagerRequiresConfig(t *testing.T) {
	_, err := NewManager(nil)
	assert.Error(t, err)
}

func TestParseStorageState(t *testing.T) {
	state, err := ParseStorageState([]byte(`{
		"cookies": [
			{"name": "prov", "value": "abc", "domain": ".stackoverflow.com", "path": "/", "httpOnly": true, "secure": true, "expires": 1893456000}
		],
		"origins": [
			{"origin": "https://stackoverflow.com", "localStorage": [{"name": "theme", "value": "dark"}]}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, state.Cookies, 1)
	c := state.Cookies[0]
	assert.Equal(t, "prov", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, ".stackoverflow.com", c.Domain)
	assert.True(t, c.HTTPOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, map[string]map[string]string{
		"https://stackoverflow.com": {"theme": "dark"},
	}, state.Origins)

	_, err = ParseStorageState([]byte(`{"cookies": [`))
	assert.Error(t, err)
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `"[name=\"q\"]"`, jsString(`[name="q"]`))
	assert.Equal(t, `"#a\\b"`, jsString(`#a\b`))
}

func TestTimeoutError(t *testing.T) {
	err := timeoutError(fmt.Errorf("run: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, browser.ErrTimeout)

	other := errors.New("target closed")
	assert.Same(t, other, timeoutError(other))
	assert.NoError(t, timeoutError(nil))
}

func TestRemoteObjectsShareThePageGroup(t *testing.T) {
	group := objectGroup(target.ID("ABC123"))
	assert.Equal(t, "pagecheck-ABC123", group)

	ev := evaluateParams("document.querySelector('#q')", false, group)
	assert.Equal(t, group, ev.ObjectGroup)
	assert.False(t, ev.ReturnByValue)

	call := callParams(runtime.RemoteObjectID("obj-1"), jsParent, false, group)
	assert.Equal(t, group, call.ObjectGroup)
	assert.Equal(t, runtime.RemoteObjectID("obj-1"), call.ObjectID)
	assert.Empty(t, call.Arguments)

	withArg := callParams("obj-1", jsSameNode, true, group, &runtime.CallArgument{ObjectID: "obj-2"})
	require.Len(t, withArg.Arguments, 1)
	assert.Equal(t, runtime.RemoteObjectID("obj-2"), withArg.Arguments[0].ObjectID)
	assert.True(t, withArg.ReturnByValue)
}
