package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/services"
)

var (
	superuserName  string
	superuserEmail string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Add an administrator and email them a confirmation code",
	Long: `Creates a superuser with the admin role. The confirmation code is sent to
the given email (or logged when SMTP_HOST is unset) and can be exchanged for an
access token at POST /api/v1/auth/token.`,
	RunE: runCreateSuperuser,
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserName, "username", "", "Username of the superuser")
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "Email of the superuser")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createSuperuserCmd)
}

func runCreateSuperuser(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	users := repositories.NewUserRepository(db)
	issuer := services.NewConfirmationService(users, services.NewMailer(cfg.Mail), cfg.Auth.ConfirmationCodeLength)
	admin := services.NewAdminService(db, users, issuer)

	user, err := admin.CreateSuperuser(cmd.Context(), superuserName, superuserEmail)
	if err != nil {
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Superuser created")
	fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created, confirmation code sent to %s\n", user.Username, user.Email)
	return nil
}
