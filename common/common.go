package common

import (
	"github.com/minio/minio-go/v7"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/shared"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var Config *shared.Config
var Gorm *gorm.DB
var Mongo *mongo.Database
var MinIOClient *minio.Client
var Pipeline *renderer.Pipeline
