package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matloa/secretnotes/internal/auth"
	"github.com/matloa/secretnotes/internal/config"
	"github.com/matloa/secretnotes/internal/db"
	"github.com/matloa/secretnotes/internal/db/repository"
	"github.com/matloa/secretnotes/internal/models"
)

var (
	configPath string
	cfg        *config.Config
	database   *db.DB
)

var rootCmd = &cobra.Command{
	Use:   "notesadmin",
	Short: "Secret Notes Server administration tool",
	Long:  "Administrative tool for initializing the notes database and managing users",
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE:  initDatabase,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE:  createUser,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  listUsers,
}

var (
	seedDemo     bool
	username     string
	password     string
	generateTOTP bool
)

func init() {
	// Root flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	// db init flags
	dbInitCmd.Flags().BoolVar(&seedDemo, "seed", false, "Seed demo users and notes")

	// User create flags
	userCreateCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	userCreateCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	userCreateCmd.Flags().BoolVar(&generateTOTP, "generate-totp", false, "Generate a TOTP secret and enroll the user in 2FA")

	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("password")

	// Add commands
	dbCmd.AddCommand(dbInitCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initDB() error {
	// Load configuration
	var err error
	cfg, err = config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Connect to database
	database, err = db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func initDatabase(cmd *cobra.Command, args []string) error {
	if err := initDB(); err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	fmt.Println("Database initialized")

	if !seedDemo {
		return nil
	}

	if err := seed(); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	fmt.Println("Demo users and notes seeded")

	return nil
}

// seed inserts the demo accounts and bernardo's two shared notes
func seed() error {
	userRepo := repository.NewUserRepository(database.DB)
	noteRepo := repository.NewNoteRepository(database.DB)

	demoUsers := []struct {
		username string
		password string
	}{
		{"admin", "password"},
		{"bernardo", "omgMPC"},
	}

	var bernardo *models.User
	for _, d := range demoUsers {
		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}
		user := &models.User{Username: d.username, PasswordHash: hash}
		if err := userRepo.Create(user); err != nil {
			return err
		}
		if d.username == "bernardo" {
			bernardo = user
		}
	}

	demoNotes := []struct {
		writtenAt string
		body      string
		publicID  string
	}{
		{"1993-09-23 10:10:10", "hello my friend", "1234567890"},
		{"1993-09-23 12:10:10", "i want lunch pls", "1234567891"},
	}

	for _, d := range demoNotes {
		writtenAt, err := time.Parse("2006-01-02 15:04:05", d.writtenAt)
		if err != nil {
			return err
		}
		note := &models.Note{
			OwnerID:   bernardo.ID,
			WrittenAt: writtenAt,
			Body:      d.body,
			PublicID:  d.publicID,
		}
		if err := noteRepo.Create(note); err != nil {
			return err
		}
	}

	return nil
}

func createUser(cmd *cobra.Command, args []string) error {
	if err := initDB(); err != nil {
		return err
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.DB)

	taken, err := userRepo.UsernameTaken(username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return fmt.Errorf("username %q is already taken", username)
	}

	// Generate TOTP secret if requested
	var secret string
	if generateTOTP {
		secret, err = auth.GenerateTOTPSecret(username)
		if err != nil {
			return fmt.Errorf("failed to generate TOTP secret: %w", err)
		}
	}

	// Hash password
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		OTPSecret:    secret,
	}

	if err := userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("User ID: %d\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)

	if generateTOTP {
		uri := auth.ProvisioningURI(secret, username, "")
		fmt.Printf("\nTOTP Secret: %s\n", secret)
		fmt.Printf("Provisioning URI: %s\n", uri)
		fmt.Printf("\nScan the URI with a TOTP app (Google Authenticator, Authy, etc.)\n")
	} else {
		log.Printf("User %q created without 2FA enrollment", username)
	}

	return nil
}

func listUsers(cmd *cobra.Command, args []string) error {
	if err := initDB(); err != nil {
		return err
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.DB)
	noteRepo := repository.NewNoteRepository(database.DB)
	users, err := userRepo.List()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	fmt.Printf("\nTotal users: %d\n\n", len(users))
	fmt.Printf("%-5s %-20s %-5s %s\n", "ID", "Username", "2FA", "Notes")
	fmt.Println("----------------------------------------------")

	for _, user := range users {
		enrolled := "No"
		if user.HasOTP() {
			enrolled = "Yes"
		}
		count, err := noteRepo.CountByOwner(user.ID)
		if err != nil {
			return fmt.Errorf("failed to count notes for %q: %w", user.Username, err)
		}
		fmt.Printf("%-5d %-20s %-5s %d\n", user.ID, user.Username, enrolled, count)
	}

	return nil
}
