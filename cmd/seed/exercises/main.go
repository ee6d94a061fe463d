package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/strideworks/trackside/internal/config"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoExerciseRepository(db)

	exercises := []domain.Exercise{
		// Sprint drills
		{Name: "A-Skip", Category: "Sprint Drills", Equipment: "None", VideoURL: "https://www.youtube.com/watch?v=4tjJ2Ovl5dU"},
		{Name: "B-Skip", Category: "Sprint Drills", Equipment: "None", VideoURL: "https://www.youtube.com/watch?v=X3GlPCulBB4"},
		{Name: "High Knees", Category: "Sprint Drills", Equipment: "None", VideoURL: "https://www.youtube.com/watch?v=8opcQdC-V-U"},
		{Name: "Butt Kicks", Category: "Sprint Drills", Equipment: "None", VideoURL: "https://www.youtube.com/watch?v=HssnbCGpj3I"},
		{Name: "Wicket Runs", Category: "Sprint Drills", Equipment: "Mini Hurdles", VideoURL: "https://www.youtube.com/watch?v=2C1xY9PKWhc"},
		{Name: "Flying 30s", Category: "Sprint Drills", Equipment: "None"},
		{Name: "Block Starts", Category: "Sprint Drills", Equipment: "Starting Blocks"},
		{Name: "Hill Sprints", Category: "Sprint Drills", Equipment: "None"},

		// Strength
		{Name: "Back Squat", Category: "Strength", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=SW_C1A-rejs"},
		{Name: "Power Clean", Category: "Strength", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=KjGvwQl8tis"},
		{Name: "Romanian Deadlift", Category: "Strength", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=JCXUYuzwZ_M"},
		{Name: "Hip Thrust", Category: "Strength", Equipment: "Barbell", VideoURL: "https://www.youtube.com/watch?v=xDmFkJxPzeM"},
		{Name: "Bulgarian Split Squat", Category: "Strength", Equipment: "Dumbbell", VideoURL: "https://www.youtube.com/watch?v=9FOMyxA3Lw4"},
		{Name: "Nordic Hamstring Curl", Category: "Strength", Equipment: "Partner/Anchor"},
		{Name: "Calf Raise", Category: "Strength", Equipment: "Machine", VideoURL: "https://www.youtube.com/watch?v=3UWi44yN-wM"},

		// Plyometrics
		{Name: "Box Jump", Category: "Plyometrics", Equipment: "Box", VideoURL: "https://www.youtube.com/watch?v=hxldG9FX4j4"},
		{Name: "Depth Jump", Category: "Plyometrics", Equipment: "Box"},
		{Name: "Bounding", Category: "Plyometrics", Equipment: "None"},
		{Name: "Single-Leg Hops", Category: "Plyometrics", Equipment: "None"},
		{Name: "Standing Long Jump", Category: "Plyometrics", Equipment: "None"},
		{Name: "Medicine Ball Throw", Category: "Plyometrics", Equipment: "Medicine Ball"},

		// Endurance
		{Name: "Tempo Run", Category: "Endurance", Equipment: "None"},
		{Name: "Interval 400s", Category: "Endurance", Equipment: "Track"},
		{Name: "Fartlek Run", Category: "Endurance", Equipment: "None"},
		{Name: "Long Slow Distance", Category: "Endurance", Equipment: "None"},

		// Mobility and recovery
		{Name: "Hurdle Mobility", Category: "Mobility", Equipment: "Hurdles"},
		{Name: "Hip Flexor Stretch", Category: "Mobility", Equipment: "None"},
		{Name: "Foam Rolling", Category: "Recovery", Equipment: "Foam Roller"},
		{Name: "Pool Session", Category: "Recovery", Equipment: "Pool"},
	}

	seeded := 0
	skipped := 0
	for i := range exercises {
		if err := repo.Create(ctx, &exercises[i]); err != nil {
			if errors.Is(err, domain.ErrDuplicateExercise) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed %q: %v", exercises[i].Name, err)
		}
		seeded++
	}

	fmt.Printf("Seeded %d exercises (%d already present)\n", seeded, skipped)
}
