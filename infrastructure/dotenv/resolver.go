// Package dotenv resolves the mempool node address and caches it in a .env file.
package dotenv

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const NodeAddressKey = "MEMPOOL_NODE_ADDRESS"

const prompt = "Enter your mempool.space self-hosted node address: "

var ErrNoNodeAddress = errors.New("no node address configured")

type Resolver struct {
	path   string
	in     io.Reader
	out    io.Writer
	logger *zap.SugaredLogger
}

// NewResolver creates a resolver that reads and writes the env file at path and
// prompts on in/out when no address is known.
func NewResolver(path string, in io.Reader, out io.Writer, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		path:   path,
		in:     in,
		out:    out,
		logger: logger,
	}
}

// NodeAddress returns configured if it is set. Otherwise it looks into the env file and
// finally asks the user. A prompted address is written back to the env file.
func (r *Resolver) NodeAddress(configured string) (string, error) {
	if address := strings.TrimSpace(configured); address != "" {
		return address, nil
	}

	env, err := r.read()
	if err != nil {
		return "", err
	}
	if address := strings.TrimSpace(env[NodeAddressKey]); address != "" {
		r.logger.Infow("Using node address from env file.", "file", r.path)
		return address, nil
	}

	address, err := r.ask()
	if err != nil {
		return "", err
	}

	env[NodeAddressKey] = address
	if err := godotenv.Write(env, r.path); err != nil {
		return "", errors.Wrapf(err, "saving node address to [%s]", r.path)
	}
	r.logger.Infow("Saved node address.", "file", r.path)
	return address, nil
}

// read returns the entries of the env file, an empty map if there is no file.
func (r *Resolver) read() (map[string]string, error) {
	env, err := godotenv.Read(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading env file [%s]", r.path)
	}
	return env, nil
}

func (r *Resolver) ask() (string, error) {
	if r.in == nil {
		return "", ErrNoNodeAddress
	}
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", errors.Wrap(err, "writing prompt")
	}

	scanner := bufio.NewScanner(r.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading node address")
		}
		return "", ErrNoNodeAddress
	}
	address := strings.TrimSpace(scanner.Text())
	if address == "" {
		return "", ErrNoNodeAddress
	}
	return address, nil
}
