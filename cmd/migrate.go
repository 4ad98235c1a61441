package cmd

import (
	"ai-interviewer-backend/config"
	"ai-interviewer-backend/db"
	"ai-interviewer-backend/initializers"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать или обновить структуру БД и завершить работу",
	RunE: func(_ *cobra.Command, _ []string) error {
		config.InitConfig()
		initializers.InitLogger(config.Conf.App.LogLevel)
		err := db.Connect(db.ConnConfig{
			Host:     config.Conf.Database.Host,
			Port:     config.Conf.Database.Port,
			Name:     config.Conf.Database.Name,
			User:     config.Conf.Database.User,
			Password: config.Conf.Database.Password,
			Migrate:  true,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("Структура БД актуальна")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
