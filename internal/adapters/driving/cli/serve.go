package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexview/internal/adapters/driving/api"
	"github.com/custodia-labs/lexview/internal/core/services"
	"github.com/custodia-labs/lexview/internal/renderers/html"
)

// DefaultServeAddr is used when neither --addr nor server.addr is set.
const DefaultServeAddr = ":8080"

// AutoAddr asks for the first free loopback port in the auto range.
const AutoAddr = "auto"

const (
	autoPortFirst = 8080
	autoPortLast  = 8099
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and review page",
	Long: `Start an HTTP server exposing the render operations as a JSON API,
plus an HTML form for pasting a document and reviewing its annotations.

Endpoints:
  GET  /                    paste form
  POST /annotate            annotated page (needs a configured model)
  POST /api/render/entities render spans over text
  POST /api/render/summary  render summary sections
  POST /api/annotate        run the model and render both views
  GET  /healthcheck         liveness

Example:
  lexview serve --addr 127.0.0.1:8080
  lexview serve --addr auto`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, or \"auto\" for a free port (default server.addr or :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	c, err := loadComponents()
	if err != nil {
		return err
	}

	addr, err := resolveServeAddr(serveAddr, c.store.GetString(file.KeyServerAddr))
	if err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.RouterConfig{Handler: api.NewHandler(c.service(html.New()))})

	fmt.Fprintf(cmd.OutOrStdout(), "lexview listening on http://%s\n", displayAddr(addr))
	return api.Serve(cmd.Context(), addr, router)
}

// resolveServeAddr picks the flag, then the configured address, then the
// default. "auto" scans for a free loopback port.
func resolveServeAddr(flag, configured string) (string, error) {
	addr := flag
	if addr == "" {
		addr = configured
	}
	if addr == "" {
		addr = DefaultServeAddr
	}
	if addr != AutoAddr {
		return addr, nil
	}

	port, err := services.FindAvailablePort(autoPortFirst, autoPortLast)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}

// displayAddr fills in localhost for a bare port.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
