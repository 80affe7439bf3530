// Package provider manages the built-in content source providers.
package provider

import (
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/mangadex"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/nhentai"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/store"
	"github.com/papersrc/papersrc/where"
)

// Provider represents a source provider.
type Provider struct {
	ID   string
	Name string
	// Adult marks providers serving 18+ content only.
	Adult bool
	// Challenged marks providers behind an anti-bot interstitial.
	Challenged   bool
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   mangadex.ID,
			Name: mangadex.Name,
			CreateSource: func() (source.Source, error) {
				return mangadex.New(Settings(mangadex.ID), Secrets(mangadex.ID), Executor(mangadex.Interceptor())), nil
			},
		},
		{
			ID:         nhentai.ID,
			Name:       nhentai.Name,
			Adult:      true,
			Challenged: true,
			CreateSource: func() (source.Source, error) {
				return nhentai.New(Settings(nhentai.ID), Executor(nhentai.Interceptor())), nil
			},
		},
	}
}

// Get finds a provider by id or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.ID == name || p.Name == name
	})
}

// Defaults returns the providers listed in the sources.default setting.
// Unknown entries are skipped.
func Defaults() []*Provider {
	return lo.FilterMap(viper.GetStringSlice(key.DefaultSources), func(name string, _ int) (*Provider, bool) {
		return Get(name)
	})
}

// Settings is the plaintext store of a source, a JSON file under the state directory.
func Settings(id string) store.Store {
	return store.NewFile(where.State(id))
}

// Secrets is the credential store of a source, kept in the OS keyring.
func Secrets(id string) store.Store {
	return store.NewKeyring(viper.GetString(key.StoreKeyringService), id)
}

// Executor builds the rate limited client configured by the network settings.
func Executor(interceptor network.Interceptor) network.Executor {
	return network.NewClient(network.Options{
		RequestsPerSecond: viper.GetInt(key.NetworkRequestsPerSecond),
		Timeout:           time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
		Interceptor:       interceptor,
		Fingerprint:       viper.GetBool(key.NetworkTLSFingerprint),
	})
}
