package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/herewego/pkg/service"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve entity digests over HTTP or MCP",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	httpCmd = &cobra.Command{
		Use:   "http",
		Short: "Serve GET /digest?entity=... over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			digester, err := newPipeline(cmd.Context())

			if err != nil {
				return err
			}

			srv := service.NewDigestServer(digester, service.WithAddr(viper.GetString("server.host"), viper.GetInt("server.port")))

			go func() {
				<-cmd.Context().Done()
				srv.Shutdown()
			}()

			return srv.Start()
		},
	}

	mcpCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Serve the entity_digest tool over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			digester, err := newPipeline(cmd.Context())

			if err != nil {
				return err
			}

			return service.ServeStdio(service.NewDigestTool(digester), version)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.AddCommand(httpCmd)
	serveCmd.AddCommand(mcpCmd)

	serveCmd.PersistentFlags().IntP("port", "p", 3210, "Port to serve on")
	serveCmd.PersistentFlags().StringP("host", "H", "0.0.0.0", "Host address to bind to")

	viper.BindPFlag("server.port", serveCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.PersistentFlags().Lookup("host"))
}

var longServe = `
Serve the entity digest pipeline to other programs. The index is loaded once
at startup and shared by every request.

Examples:
  # Answer digests over HTTP.
  herewego serve http --port 3210

  # Expose the entity_digest tool to an MCP client over stdio.
  herewego serve mcp
`
