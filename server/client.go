package server

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// formatEndpoint converts an endpoint to gRPC target format. Paths
// beginning with '/' or './' are Unix domain sockets.
func formatEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "/") || strings.HasPrefix(endpoint, "./") {
		return "unix://" + endpoint
	}
	return endpoint
}

// Client calls a remote storefront service. It satisfies Handler.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// Dial connects to a storefront server at endpoint.
func Dial(endpoint string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(formatEndpoint(endpoint), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: conn, conn: conn}, nil
}

// ClientFromConn creates a client from an existing connection. Close does
// not close cc.
func ClientFromConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Handle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HandleMethod, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the connection opened by Dial.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Command builds a request for command with the given arguments.
func Command(command string, fields map[string]any) (*structpb.Struct, error) {
	all := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		all[k] = v
	}
	all["command"] = command
	return structpb.NewStruct(all)
}
