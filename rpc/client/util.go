package client

import (
	"fmt"

	"github.com/tallykv/tallykv/lib/logging"
	"github.com/tallykv/tallykv/rpc/common"
)

var Logger = logging.For("client")

// invokeRPCRequest serializes a request, sends it over the transport and
// deserializes the response. It checks that the response matches the
// request type and surfaces the server's typed error if one is carried.
func (c *pollClient) invokeRPCRequest(req *common.Message) (*common.Message, error) {
	data, err := c.serializer.Serialize(*req)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %v", err)
	}

	respData, err := c.transport.Send(data)
	if err != nil {
		return nil, fmt.Errorf("transport error: %v", err)
	}

	var resp common.Message
	if err := c.serializer.Deserialize(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to deserialize response: %v", err)
	}

	// Surface the server-side error with its return code intact
	if err := resp.ErrorOf(); err != nil {
		return nil, err
	}

	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("unexpected response type: expected %s, got %s",
			req.MsgType, resp.MsgType)
	}

	return &resp, nil
}
