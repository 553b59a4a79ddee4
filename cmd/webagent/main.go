package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gianlucamazza/webagent/analytics"
	"github.com/gianlucamazza/webagent/config"
	"github.com/gianlucamazza/webagent/metadata"
	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/gianlucamazza/webagent/persistence/inmem"
	redisstore "github.com/gianlucamazza/webagent/persistence/redis"
	"github.com/gianlucamazza/webagent/tool"
	"github.com/gianlucamazza/webagent/util"
	"github.com/gianlucamazza/webagent/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cli struct {
	cfg            config.Config
	definitionFile string
	resume         bool
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("definition-file", "", "Path to the workflow definition json")
	cmd.Flags().Bool("resume", false, "resume the run from the persisted state snapshot")
	cmd.Flags().String("storage-impl", "memory", "implementation of underline storage")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "webagent", "namespace used in storage")
	cmd.Flags().Uint("max-attempts", 3, "per step retry attempts")
	cmd.Flags().Int64("backoff-ms", 1000, "per step retry backoff in milliseconds")
	cmd.Flags().Bool("exponential", true, "use exponential backoff between retries")
	cmd.Flags().String("analytics-file", "", "file receiving per step analytics records")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	if len(configFile) > 0 {
		viper.SetConfigFile(configFile)
		if err = viper.ReadInConfig(); err != nil {
			return err
		}
	}
	c.definitionFile = viper.GetString("definition-file")
	c.resume = viper.GetBool("resume")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.RetryPolicy = workflow.RetryPolicy{
		MaxAttempts: viper.GetUint("max-attempts"),
		BackoffMs:   viper.GetInt64("backoff-ms"),
		Exponential: viper.GetBool("exponential"),
	}
	if analyticsFile := viper.GetString("analytics-file"); len(analyticsFile) > 0 {
		c.cfg.AnalyticsConfig = analytics.DataCollectorConfig{
			FileName:      analyticsFile,
			CollectorType: analytics.LOG_FILE_DATA_COLLECTOR,
		}
	}
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	if len(c.definitionFile) == 0 {
		return fmt.Errorf("definition-file is required")
	}
	if err := analytics.InitDataCollector(c.cfg.AnalyticsConfig); err != nil {
		return err
	}

	defCodec := util.NewJsonEncoderDecoder[model.WorkflowDefinition]()
	def, err := defCodec.ReadFile(c.definitionFile)
	if err != nil {
		return err
	}

	var defStore persistence.DefinitionStore
	var stateStore persistence.StateStore
	switch c.cfg.StorageType {
	case config.STORAGE_TYPE_REDIS:
		redisConf := redisstore.Config{
			Addrs:     c.cfg.RedisConfig.Addrs,
			Namespace: c.cfg.RedisConfig.Namespace,
			PoolSize:  c.cfg.RedisConfig.PoolSize,
			Password:  c.cfg.RedisConfig.Password,
		}
		defStore = redisstore.NewRedisDefinitionStore(redisConf)
		stateStore = redisstore.NewRedisStateStore(redisConf)
	default:
		defStore = inmem.NewInMemDefinitionStore()
		stateStore = inmem.NewInMemStateStore()
	}

	service := metadata.NewService(defStore)
	if err := service.Register(def); err != nil {
		return err
	}

	executor := workflow.NewExecutor(tool.NewLocalExecutor())
	ctx := context.Background()

	var state *model.WorkflowState
	if c.resume {
		snapshot, err := stateStore.Get(def.Id)
		if err != nil {
			return err
		}
		state, err = executor.Resume(ctx, def, snapshot)
		if err != nil {
			return err
		}
	} else {
		state, err = executor.ExecuteWithRetry(ctx, def, c.cfg.RetryPolicy)
		if err != nil {
			return err
		}
	}
	if err := stateStore.Save(state); err != nil {
		return err
	}

	summary, err := json.MarshalIndent(state.ProgressSummary(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(summary))
	return nil
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "webagent",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
