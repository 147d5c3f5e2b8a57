package main

import (
	"os"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cli 在子命令之间共享配置路径
type cli struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	state := &cli{}

	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Maintenance commands for the portfolio site",
		Long: `portfolioctl manages the portfolio database outside of the HTTP server.

Available commands:
  seed locations - Load countries and synthesize regions down to barangays
  seed demo      - Fill empty collections with demo content
  user create    - Create a back-office account`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&state.configPath, "config", os.Getenv("CONFIG_FILE"), "Path to YAML config file")

	root.AddCommand(newSeedCmd(state), newUserCmd(state))
	return root
}

// open 读取配置并连接数据库，迁移由 db.Open 完成。
func (s *cli) open() (*gorm.DB, *zap.Logger, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.Must(cfg.Log.Level, "console")

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return gdb, logger, nil
}
