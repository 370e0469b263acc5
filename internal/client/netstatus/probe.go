package netstatus

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HTTPProbe sends HEAD to URL. Any HTTP response, whatever its status, means
// the backend is reachable; only transport errors count as offline.
type HTTPProbe struct {
	URL    string
	Client *http.Client
}

func (p HTTPProbe) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return err
	}

	c := p.Client
	if c == nil {
		c = http.DefaultClient
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// GRPCHealthProbe asks the backend's gRPC health service whether it is serving.
type GRPCHealthProbe struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	service string
}

func NewGRPCHealthProbe(addr, service string) (*GRPCHealthProbe, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCHealthProbe{conn: conn, client: healthpb.NewHealthClient(conn), service: service}, nil
}

func (p *GRPCHealthProbe) Probe(ctx context.Context) error {
	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{Service: p.service})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("backend not serving: %s", resp.GetStatus())
	}
	return nil
}

func (p *GRPCHealthProbe) Close() error {
	return p.conn.Close()
}
