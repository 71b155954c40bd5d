package poll

import (
	"github.com/spf13/cobra"
	"github.com/tallykv/tallykv/cmd/util"
	"github.com/tallykv/tallykv/rpc/client"
)

var (
	pollClient client.IPollClient

	// PollCommands represents the poll command group
	PollCommands = &cobra.Command{
		Use:               "poll",
		Short:             "Manage polls on a tallykv server",
		PersistentPreRunE: setupPollClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the poll command
	util.SetupRPCClientFlags(PollCommands)

	// Requester identity, forwarded with create, edit and delete
	PollCommands.PersistentFlags().String("requester", "", util.WrapString("Caller identity. Becomes the owner of created polls and is checked on edit/delete when the server enforces ownership"))

	// Add subcommands
	PollCommands.AddCommand(createCmd)
	PollCommands.AddCommand(getCmd)
	PollCommands.AddCommand(listCmd)
	PollCommands.AddCommand(editCmd)
	PollCommands.AddCommand(delCmd)
	PollCommands.AddCommand(voteCmd)
}

// setupPollClient initializes the RPC poll client
func setupPollClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the poll client
	pollClient, err = client.NewPollClient(
		*config,
		t,
		s,
		util.GetRequester(),
	)

	return err
}
