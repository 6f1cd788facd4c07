package main

import (
	"context"
	"time"

	collector_builder "github.com/devdashboard/devdashboard/collector/builder"
	fetch_job_handler "github.com/devdashboard/devdashboard/collector/handler"
	"github.com/devdashboard/devdashboard/collector/sink"

	"github.com/devdashboard/devdashboard/app_setting"
	"github.com/devdashboard/devdashboard/utils"
	"github.com/devdashboard/devdashboard/utils/dotenv"
	"github.com/devdashboard/devdashboard/utils/flag"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

func main() {
	flag.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		Logger.Log.Fatal("fail to load env: ", err)
	}

	setting, err := app_setting.ParseAppSetting()
	if err != nil {
		Logger.Log.Fatal("fail to parse app setting: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	var statusSink sink.StatusSink
	if setting.DisableRedisBroadcast {
		statusSink = sink.NewStdErrSink()
	} else {
		if statusSink, err = sink.NewRedisSink(); err != nil {
			Logger.Log.Fatal("fail to connect redis: ", err)
		}
	}

	handler := fetch_job_handler.NewFetchJobHandler(db, collector_builder.NewDefaultRegistry(), statusSink)

	Logger.Log.Info("fetch worker starts up, interval: ", setting.FetchInterval)
	for {
		if err := handler.RefreshAllActive(context.Background()); err != nil {
			Logger.Log.Error("refresh cycle failed: ", err)
		}
		time.Sleep(setting.FetchInterval)
	}
}
