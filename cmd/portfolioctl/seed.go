package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSeedCmd(state *cli) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate reference and demo data",
	}

	var rngSeed int64
	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "Load countries and synthesize the location hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, logger, err := state.open()
			if err != nil {
				return err
			}
			defer logger.Sync()

			countries, err := seed.BundledCountries()
			if err != nil {
				return err
			}
			if rngSeed == 0 {
				rngSeed = time.Now().UnixNano()
			}

			summary, err := seed.Locations(cmd.Context(), gdb, countries, rand.New(rand.NewSource(rngSeed)))
			if errors.Is(err, seed.ErrAlreadySeeded) {
				fmt.Fprintln(cmd.OutOrStdout(), "地理数据已存在，跳过生成")
				return nil
			}
			if err != nil {
				return err
			}

			logger.Info("locations seeded", zap.Int64("seed", rngSeed), zap.Int("countries", summary.Countries))
			fmt.Fprintf(cmd.OutOrStdout(), "countries=%d regions=%d provinces=%d cities=%d barangays=%d\n",
				summary.Countries, summary.Regions, summary.Provinces, summary.Cities, summary.Barangays)
			return nil
		},
	}
	locationsCmd.Flags().Int64Var(&rngSeed, "seed", 0, "Random seed for synthesized locations (default: current time)")

	var ownerEmail string
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Fill empty collections with demo content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, logger, err := state.open()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ownerID, err := resolveOwner(gdb, ownerEmail)
			if err != nil {
				return err
			}

			summary, err := seed.Demo(gdb, ownerID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile=%t experiences=%d skills=%d projects=%d portfolio=%d contact_info=%d content=%d\n",
				summary.Profile, summary.Experiences, summary.Skills, summary.Projects,
				summary.Portfolio, summary.ContactInfo, summary.Content)
			return nil
		},
	}
	demoCmd.Flags().StringVar(&ownerEmail, "owner", "", "Email of the account that owns the demo profile (default: first account)")

	seedCmd.AddCommand(locationsCmd, demoCmd)
	return seedCmd
}

// resolveOwner 没有账号时返回 0，演示数据不包含个人资料。
func resolveOwner(gdb *gorm.DB, email string) (uint, error) {
	var user db.User
	query := gdb.Order("id ASC")
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		query = query.Where("email = ?", email)
	}
	err := query.First(&user).Error
	switch {
	case err == nil:
		return user.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound) && email == "":
		return 0, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, fmt.Errorf("no account with email %s", email)
	default:
		return 0, err
	}
}
