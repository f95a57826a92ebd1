package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_DisplayAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "127.0.0.1:9000", displayAddr("127.0.0.1:9000"))
}

func TestResolveServeAddr(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		configured string
		want       string
	}{
		{"flag wins", "127.0.0.1:9000", ":7000", "127.0.0.1:9000"},
		{"configured", "", ":7000", ":7000"},
		{"default", "", "", DefaultServeAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := resolveServeAddr(tt.flag, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestResolveServeAddr_Auto(t *testing.T) {
	addr, err := resolveServeAddr(AutoAddr, "")
	if err != nil {
		t.Skipf("no free port in auto range: %v", err)
	}
	assert.Regexp(t, `^127\.0\.0\.1:80(8\d|9\d)$`, addr)
}
