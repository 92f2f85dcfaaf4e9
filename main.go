package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sunthewhat/easy-cert-render/api"
	"github.com/sunthewhat/easy-cert-render/common"
	"github.com/sunthewhat/easy-cert-render/common/config"
	"github.com/sunthewhat/easy-cert-render/common/gorm"
	"github.com/sunthewhat/easy-cert-render/common/mongo"
	"github.com/sunthewhat/easy-cert-render/common/pipeline"
	"github.com/sunthewhat/easy-cert-render/common/util"
)

func main() {
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()
	config.LoadConfig()
	if *isPushDB {
		gorm.Push_db()
		if !*isRunAfter {
			return
		}
	}

	gorm.InitGorm()
	mongo.InitMongo()
	if err := util.InitMinIO(); err != nil {
		slog.Error("Failed to initialize MinIO", "error", err)
		os.Exit(1)
	}
	if common.Config.BatchRetention > 0 {
		util.StartBatchCleanupJob(common.MinIOClient, *common.Config.BucketCertificate, common.Config.BatchRetention)
	}
	pipeline.InitPipeline()
	api.InitFiber()
}
