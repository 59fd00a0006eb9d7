package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	configFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-c", "fittrack.json", "-a", "store:50051"}, configFlags, []string{"-c", "fittrack.json"}},
		{"equals form", []string{"-config=alt.json", "-k", "anon"}, configFlags, []string{"-config=alt.json"}},
		{"mixed forms keep order", []string{"-config=first.json", "-c", "second.json", "-t", "5"}, configFlags,
			[]string{"-config=first.json", "-c", "second.json"}},
		{"unknown flags and positionals dropped", []string{"-d", "x.db", "-l=debug", "extra"}, configFlags, []string{}},
		{"trailing flag without value", []string{"-c"}, configFlags, []string{"-c"}},
		{"dash token is not a value", []string{"-c", "-m", ":9090"}, configFlags, []string{"-c"}},
		{"equals value may start with dashes", []string{"-config=--odd.json"}, configFlags, []string{"-config=--odd.json"}},
		{"several owned flags", []string{"-a", "store:50051", "-d", "state/fittrack.db", "-m", ":9090"}, []string{"-a", "-d"},
			[]string{"-a", "store:50051", "-d", "state/fittrack.db"}},
		{"repeated flag kept", []string{"-t", "5", "-t", "10"}, []string{"-t"}, []string{"-t", "5", "-t", "10"}},
		{"empty", []string{}, configFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}

func TestLookupString(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  string
	}{
		{name: "absent", args: []string{"-a", "x"}, names: []string{"env"}, want: ""},
		{name: "separate value", args: []string{"-env", "prod.env"}, names: []string{"env"}, want: "prod.env"},
		{name: "equals form", args: []string{"-env=dev.env", "-a", "x"}, names: []string{"env"}, want: "dev.env"},
		{name: "alias, last wins", args: []string{"-c", "a.json", "-config", "b.json"}, names: []string{"c", "config"}, want: "b.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupString(tt.args, tt.names...))
		})
	}
}

func TestEnvFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", "127.0.0.1:1", "-env", "/tmp/fittrack.env"}
	assert.Equal(t, "/tmp/fittrack.env", EnvFileFlag())
}
