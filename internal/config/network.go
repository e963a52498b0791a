package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-deployments/internal/domain/config"
)

const chainIDTimeout = 10 * time.Second

// NetworkResolver resolves network names from foundry.toml [rpc_endpoints]
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	dial          func(ctx context.Context, rawurl string) (chainIDFetcher, error)
}

type chainIDFetcher interface {
	ChainID(ctx context.Context) (uint64, error)
	Close()
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{
		foundryConfig: foundryConfig,
		dial:          dialEthClient,
	}
}

// Resolve resolves a network name, or a raw http(s)/ws(s) URL, to its
// configuration. The chain id is fetched from the endpoint unless knownChainID
// is non-zero.
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string, knownChainID uint64) (*config.Network, error) {
	rpcURL, err := r.rpcURL(networkName)
	if err != nil {
		return nil, err
	}

	chainID := knownChainID
	if chainID == 0 {
		chainID, err = r.fetchChainID(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
	}

	return &config.Network{
		Name:    networkName,
		RPCURL:  rpcURL,
		ChainID: chainID,
	}, nil
}

func (r *NetworkResolver) rpcURL(networkName string) (string, error) {
	if isURL(networkName) {
		return networkName, nil
	}
	if r.foundryConfig != nil {
		if url, ok := r.foundryConfig.RpcEndpoints[networkName]; ok && url != "" {
			return url, nil
		}
	}
	return "", fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
}

// fetchChainID fetches the chain ID from an RPC endpoint
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := r.dial(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	defer client.Close()

	return client.ChainID(ctx)
}

func isURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

type ethChainIDClient struct {
	client *ethclient.Client
}

func (c *ethChainIDClient) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *ethChainIDClient) Close() {
	c.client.Close()
}

func dialEthClient(ctx context.Context, rawurl string) (chainIDFetcher, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return &ethChainIDClient{client: client}, nil
}
