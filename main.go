package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"oceansms/database"
	"oceansms/handlers"
	repository "oceansms/repositories"
	routes "oceansms/routes"
	services "oceansms/services"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Get MongoDB credentials from environment variables
	username := os.Getenv("MONGO_USERNAME")
	password := os.Getenv("MONGO_PASSWORD")
	cluster := os.Getenv("MONGO_CLUSTER")
	appName := os.Getenv("MONGO_APP_NAME")
	jwtSecret := os.Getenv("JWT_SECRET")

	if username == "" || password == "" || cluster == "" || appName == "" || jwtSecret == "" {
		log.Fatal("Missing required environment variables")
	}

	// Build MongoDB Atlas connection string
	uri := fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		username, password, cluster, appName)

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	fmt.Println("Successfully connected to MongoDB Atlas!")

	// The versioned-update transaction needs a replica set.
	checkIfReplicaSet(client)

	db := client.Database("oceans_sms")

	fmt.Println("Creating database indexes...")
	if err := database.CreateIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	// Repositories
	counterRepo := repository.NewCounterRepository(db)
	fileRepo := repository.NewFileRepository(db)
	operationRepo := repository.NewStsOperationRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	questionnaireRepo := repository.NewQuestionnaireRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	drillRepo := repository.NewDrillRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	operationService := services.NewStsOperationService(operationRepo, fileRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, operationRepo)
	auditService := services.NewAuditService(auditRepo, counterRepo)
	questionnaireService := services.NewQuestionnaireService(questionnaireRepo, counterRepo)
	trainingService := services.NewTrainingService(trainingRepo, counterRepo)
	drillService := services.NewDrillService(drillRepo, counterRepo)
	defectService := services.NewDefectService(repository.NewDefectRepository(db), counterRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	mux := routes.Setup(routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Operations:    handlers.NewStsOperationHandler(operationService),
		Equipment:     handlers.NewEquipmentHandler(equipmentService),
		Audits:        handlers.NewAuditHandler(auditService),
		Questionnaire: handlers.NewQuestionnaireHandler(questionnaireService),
		Training:      handlers.NewTrainingHandler(trainingService),
		Drills:        handlers.NewDrillHandler(drillService),
		Defects:       handlers.NewDefectHandler(defectService),
		Files:         handlers.NewFileHandler(fileRepo),
	}, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("Server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func checkIfReplicaSet(client *mongo.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result bson.M
	err := client.Database("admin").RunCommand(ctx, bson.M{"hello": 1}).Decode(&result)

	if err != nil {
		fmt.Printf("Error checking replica set: %v\n", err)
		return false
	}

	if setName, exists := result["setName"]; exists {
		fmt.Printf("Part of replica set: %v\n", setName)
		return true
	}

	fmt.Println("Not part of a replica set")
	return false
}
