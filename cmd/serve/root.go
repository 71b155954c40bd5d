package serve

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/tallykv/tallykv/cmd/util"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/serializer"
	"github.com/tallykv/tallykv/rpc/server"
	"github.com/tallykv/tallykv/rpc/transport"
	"github.com/tallykv/tallykv/rpc/transport/http"
	"github.com/tallykv/tallykv/rpc/transport/tcp"
	"github.com/tallykv/tallykv/rpc/transport/unix"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the tallykv server",
		Long:    `Start the tallykv server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is TALLYKV_<flag> (e.g. TALLYKV_DATA_DIR=/var/lib/tallykv)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080, /tmp/tallykv.sock, ...)"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "data", cmdUtil.WrapString("Directory holding the durable memory file. Created if it does not exist"))

	key = "max-record-size"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Bound on the encoded size of one poll record in bytes (0 uses the built-in default of 1024)"))

	key = "enforce-owner"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("When set, edit and delete require the requester to match the poll's owner"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for transport reads and writes"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "log-format"
	ServeCmd.PersistentFlags().String(key, "text", cmdUtil.WrapString("Log output format (text, json)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.MaxRecordSize = viper.GetInt("max-record-size")
	serveCmdConfig.EnforceOwner = viper.GetBool("enforce-owner")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.LogFormat = viper.GetString("log-format")

	return nil
}

// run starts the tallykv server
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	// parse the transport
	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "http":
		t = http.NewHTTPServerTransport(0)
	case "tcp":
		t = tcp.NewTCPServerTransport(64*1024, 16)
	case "unix":
		t = unix.NewUnixServerTransport(64*1024, 16)
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv, err := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
	)
	if err != nil {
		return err
	}
	defer serv.Close()

	fmt.Println(serveCmdConfig.String())

	return serv.Serve()
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("tallykv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
