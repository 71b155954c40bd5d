package client

import (
	"fmt"

	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/serializer"
	"github.com/tallykv/tallykv/rpc/transport"
)

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// pollClient implements IPollClient over a connected transport.
type pollClient struct {
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
	requester  string
}

// -----------------------------------------------------------
// Client Factory Method
// -----------------------------------------------------------

// NewPollClient connects the given transport and returns a poll client.
// The requester identity is attached to create, edit and delete requests;
// it may be empty when the server does not enforce ownership.
func NewPollClient(
	config common.ClientConfig,
	clientTransport transport.IRPCClientTransport,
	rpcSerializer serializer.IRPCSerializer,
	requester string,
) (IPollClient, error) {
	if err := clientTransport.Connect(config); err != nil {
		return nil, fmt.Errorf("failed to connect: %v", err)
	}

	return &pollClient{
		transport:  clientTransport,
		serializer: rpcSerializer,
		requester:  requester,
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (c *pollClient) Create(question string, options []string) (*record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewCreateRequest(question, options, c.requester))
	if err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *pollClient) Get(id uint64) (*record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewGetRequest(id))
	if err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *pollClient) List() ([]record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewListRequest())
	if err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *pollClient) Edit(id uint64, question string, options []string) (*record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewEditRequest(id, question, options, c.requester))
	if err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *pollClient) Delete(id uint64) (*record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewDeleteRequest(id, c.requester))
	if err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *pollClient) Vote(id uint64, choice string) (*record.Record, error) {
	resp, err := c.invokeRPCRequest(common.NewVoteRequest(id, choice))
	if err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *pollClient) Close() error {
	return c.transport.Close()
}
