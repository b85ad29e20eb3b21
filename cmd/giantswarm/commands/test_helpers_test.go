package commands

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers "METHOD /path" routes with fixed bodies and records
// the Authorization header of every request.
type fakeAPI struct {
	*httptest.Server

	mu             sync.Mutex
	routes         map[string]string
	authorizations []string
}

func newFakeAPI(t *testing.T, routes map[string]string) *fakeAPI {
	t.Helper()

	api := &fakeAPI{routes: routes}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.authorizations = append(api.authorizations, r.Header.Get("Authorization"))
		body, ok := api.routes[r.Method+" "+r.URL.EscapedPath()]
		api.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) lastAuthorization() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.authorizations) == 0 {
		return ""
	}

	return a.authorizations[len(a.authorizations)-1]
}

func envelope(code int, data string) string {
	return fmt.Sprintf(`{"status_code":%d,"data":%s}`, code, data)
}

// setupCLI points HOME and the viper configuration at a temp directory
// and the endpoint at endpoint. It returns the config file path.
func setupCLI(t *testing.T, endpoint string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(home, "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("endpoint", endpoint)
	viper.Set("cache", "memory")
	viper.Set("output", "json")

	return configFile
}

// runCLI executes args on a fresh command tree with stdin as input.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "giantswarm", SilenceUsage: true, SilenceErrors: true}
	AddCommands(root, "1.2.3", "abc123", "2015-01-02")

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func readConfigFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
