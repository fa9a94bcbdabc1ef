package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type kv struct {
	Backend     string `mapstructure:"backend"`
	LevelDBPath string `mapstructure:"leveldb_path"`
	SQLDB       string `mapstructure:"sql_db"`
}

type catalog struct {
	SeedFile string `mapstructure:"seed_file"`
}

type topics struct {
	Orders string `mapstructure:"orders"`
}

type consumers struct {
	OrderStatsGroup string `mapstructure:"order_stats_group"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether client certificates are configured.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
}

// Enabled reports whether order events go to Kafka. Without brokers the
// orders are counted in the local store.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type chat struct {
	ReplyDelayMin time.Duration `mapstructure:"reply_delay_min"`
	ReplyDelayMax time.Duration `mapstructure:"reply_delay_max"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	KV             kv         `mapstructure:"kv"`
	Catalog        catalog    `mapstructure:"catalog"`
	Broker         broker     `mapstructure:"broker"`
	Chat           chat       `mapstructure:"chat"`
}

var defaults = map[string]any{
	"log_level":                          "info",
	"http_server_addr":                   ":8080",
	"kv.backend":                         "leveldb",
	"kv.leveldb_path":                    "data/storefront",
	"kv.sql_db":                          "",
	"catalog.seed_file":                  "",
	"broker.seed_brokers":                []string{},
	"broker.schema_registry_urls":        []string{},
	"broker.topics.orders":               "storefront-orders",
	"broker.consumers.order_stats_group": "storefront-order-stats",
	"broker.tls.ca":                      "",
	"broker.tls.cert":                    "",
	"broker.tls.key":                     "",
	"chat.reply_delay_min":               "1s",
	"chat.reply_delay_max":               "2s",
}

// Load reads the config file named by --config or STOREFRONT_CONFIG_FILE
// and applies STOREFRONT_* environment overrides. It exits on failure.
func Load() Config {
	cfg, err := load(os.Args[1:])
	if err != nil {
		die(err)
	}
	return cfg
}

func load(args []string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := getConfigFilepath(args)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err = v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getConfigFilepath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", err
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, nil
	}
	return *arg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Chat.ReplyDelayMin < 0 || c.Chat.ReplyDelayMax < c.Chat.ReplyDelayMin {
		errs = append(errs, errors.New("chat: reply delay range is invalid"))
	}
	if c.Broker.Enabled() && len(c.Broker.SchemaRegistryURLs) == 0 {
		errs = append(errs, errors.New("broker: schema_registry_urls required"))
	}
	if c.Broker.TLS.Enabled() &&
		(c.Broker.TLS.CA == "" || c.Broker.TLS.Cert == "" || c.Broker.TLS.Key == "") {
		errs = append(errs, errors.New("broker: tls needs ca, cert and key"))
	}
	return errors.Join(errs...)
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	KV:
	Backend=%q
	LevelDBPath=%q
	SQLDB=%q

	Catalog:
	SeedFile=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		Orders=%q
	Consumers:
		OrderStatsGroup=%q

	Chat:
	ReplyDelay=%s..%s

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.KV.Backend,
		c.KV.LevelDBPath,
		redactDSN(c.KV.SQLDB),
		c.Catalog.SeedFile,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.Orders,
		c.Broker.Consumers.OrderStatsGroup,
		c.Chat.ReplyDelayMin,
		c.Chat.ReplyDelayMax,
	)
}

// redactDSN hides the password of a postgres URL.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
