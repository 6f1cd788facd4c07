package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devdashboard/devdashboard/app_setting"
	collector_builder "github.com/devdashboard/devdashboard/collector/builder"
	fetch_job_handler "github.com/devdashboard/devdashboard/collector/handler"
	"github.com/devdashboard/devdashboard/collector/sink"
	"github.com/devdashboard/devdashboard/server"
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

	statusSink := newStatusSink(setting)
	handler := fetch_job_handler.NewFetchJobHandler(db, collector_builder.NewDefaultRegistry(), statusSink)

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	server.NewApiServer(db, handler).RegisterRoutes(router)

	Logger.Log.Info("api server starts up")
	router.Run(":" + setting.ServerPort)
}

func newStatusSink(setting app_setting.AppSetting) sink.StatusSink {
	if setting.DisableRedisBroadcast {
		return sink.NewStdErrSink()
	}
	redisSink, err := sink.NewRedisSink()
	if err != nil {
		Logger.Log.Fatal("fail to connect redis: ", err)
	}
	return redisSink
}
