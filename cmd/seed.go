package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedAddress struct {
	Street     string `yaml:"street"`
	City       string `yaml:"city"`
	State      string `yaml:"state"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
	IsDefault  bool   `yaml:"is_default"`
}

type seedUser struct {
	Email     string        `yaml:"email"`
	Name      string        `yaml:"name"`
	Phone     string        `yaml:"phone"`
	Role      domain.Role   `yaml:"role"`
	Addresses []seedAddress `yaml:"addresses"`
}

type seedFile struct {
	Inventory []service.InventoryInput `yaml:"inventory"`
	Users     []seedUser               `yaml:"users"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load inventory and users from a YAML file",
	Long: `Load inventory entries and user accounts from a YAML file.

Users that already exist (same email) are skipped. Inventory entries are
always inserted.`,
	RunE: runSeed,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a session token for an existing user",
	RunE:  runToken,
}

func init() {
	seedCmd.Flags().String("file", "seed.yaml", "path to the seed file")
	tokenCmd.Flags().String("email", "", "email of the user")
	_ = tokenCmd.MarkFlagRequired("email")
}

func readSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	f, err := readSeedFile(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer mongoDB.Client().Disconnect(ctx)

	inventoryRepo := repository.NewInventoryRepository(mongoDB)
	userRepo := repository.NewUserRepository(mongoDB)
	if err := repository.EnsureIndexes(ctx, inventoryRepo, userRepo); err != nil {
		return err
	}

	inventory := service.NewInventoryService(inventoryRepo, log)
	profiles := service.NewProfileService(userRepo)

	var admin string
	for _, u := range f.Users {
		user := &domain.User{Email: u.Email, Name: u.Name, Role: u.Role}
		err := userRepo.CreateUser(ctx, user)
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Info("user exists, skipping", zap.String("email", u.Email))
			continue
		}
		if err != nil {
			return err
		}
		if user.Role == domain.RoleAdmin && admin == "" {
			admin = user.ID
		}

		upd := service.ProfileUpdate{Phone: u.Phone}
		for _, a := range u.Addresses {
			upd.Addresses = append(upd.Addresses, domain.Address{
				Street:     a.Street,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
				IsDefault:  a.IsDefault,
			})
		}
		if _, err := profiles.UpdateProfile(ctx, user.ID, upd); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		log.Info("user created", zap.String("email", user.Email), zap.String("id", user.ID))
	}

	for _, in := range f.Inventory {
		item, err := inventory.Create(ctx, admin, in)
		if err != nil {
			return fmt.Errorf("inventory %q: %w", in.Name, err)
		}
		log.Info("inventory created", zap.String("name", item.Name), zap.String("id", item.ID))
	}
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")

	ctx := cmd.Context()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer mongoDB.Client().Disconnect(ctx)

	user, err := repository.NewUserRepository(mongoDB).GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := auth.NewAuthToken(cfg.SessionSecret).WithTTL(cfg.SessionTTL).GenerateToken(*user)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
