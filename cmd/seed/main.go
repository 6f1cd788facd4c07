package main

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/devdashboard/devdashboard/app_setting"
	"github.com/devdashboard/devdashboard/model"
	"github.com/devdashboard/devdashboard/utils"
	"github.com/devdashboard/devdashboard/utils/dotenv"
	"github.com/devdashboard/devdashboard/utils/flag"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

// Loads the yaml seed file into the sources table, skipping entries whose
// name already exists.
func main() {
	flag.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		Logger.Log.Fatal("fail to load env: ", err)
	}

	setting, err := app_setting.ParseAppSetting()
	if err != nil {
		Logger.Log.Fatal("fail to parse app setting: ", err)
	}

	seedFile, err := app_setting.ParseSourceSeedFile(setting.SourceSeedPath)
	if err != nil {
		Logger.Log.Fatal("fail to parse seed file: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	created := 0
	for _, seed := range seedFile.Sources {
		var count int64
		db.Model(&model.Source{}).Where("name = ?", seed.Name).Count(&count)
		if count > 0 {
			Logger.Log.Infof("source %s already exists, skipping", seed.Name)
			continue
		}

		source := model.Source{
			Id:               uuid.New().String(),
			Name:             seed.Name,
			SourceType:       seed.SourceType,
			Config:           datatypes.JSONMap(seed.NormalizedConfig()),
			Active:           seed.Active,
			AutoFetchEnabled: seed.AutoFetchEnabled,
		}
		if seed.Url != "" {
			url := seed.Url
			source.Url = &url
		}
		if err := db.Create(&source).Error; err != nil {
			Logger.Log.Errorf("fail to create source %s: %v", seed.Name, err)
			continue
		}
		created++
	}
	Logger.Log.Infof("seeded %d sources from %s", created, setting.SourceSeedPath)
}
