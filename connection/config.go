// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package connection

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes how to reach a store node.
type Config struct {
	Addr        string        `json:"addr" yaml:"addr"`
	Port        uint16        `json:"port" yaml:"port"`
	TLS         bool          `json:"tls" yaml:"tls"`
	Cert        string        `json:"cert" yaml:"cert"`
	DialTimeout time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
}

// DefaultConfig returns a config pointed at a local store node.
func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1",
		Port:        6379,
		DialTimeout: 5 * time.Second,
	}
}

// LoadConfig reads a JSON or YAML config file, selected by file extension.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(p string) (Config, error) {
	conf := DefaultConfig()

	f, err := os.Open(p)
	if err != nil {
		return conf, errors.Wrap(err, "connection: open config")
	}
	defer f.Close()

	switch ext := path.Ext(f.Name()); ext {
	case ".json":
		err = json.NewDecoder(f).Decode(&conf)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&conf)
	default:
		return conf, errors.Errorf("connection: unsupported config extension %q", ext)
	}
	if err != nil {
		return conf, errors.Wrap(err, "connection: decode config")
	}
	return conf, nil
}

// Dial establishes a connection to the configured node. With TLS enabled the
// certificate file is appended to the root CA pool before the handshake.
func Dial(conf Config) (*Conn, error) {
	addr := fmt.Sprintf("%s:%d", conf.Addr, conf.Port)

	if !conf.TLS {
		raw, err := net.DialTimeout("tcp", addr, conf.DialTimeout)
		if err != nil {
			return nil, errors.Wrapf(err, "connection: dial %s", addr)
		}
		return New(raw), nil
	}

	cert, err := os.ReadFile(conf.Cert)
	if err != nil {
		return nil, errors.Wrap(err, "connection: read certificate")
	}
	rootCAs := x509.NewCertPool()
	if ok := rootCAs.AppendCertsFromPEM(cert); !ok {
		return nil, errors.New("connection: failed to parse certificate")
	}

	dialer := &net.Dialer{Timeout: conf.DialTimeout}
	raw, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{RootCAs: rootCAs})
	if err != nil {
		return nil, errors.Wrapf(err, "connection: dial tls %s", addr)
	}
	return New(raw), nil
}
