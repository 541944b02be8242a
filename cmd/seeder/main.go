// Seeder fills a fantastat database with a synthetic league, useful for
// poking at the report and the ranking endpoints without real import files.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/magiccup/fantastat/internal/database"
	"github.com/magiccup/fantastat/internal/league"
)

const (
	playersPerRole = 25
	numDays        = 10
)

var teams = []string{"ROM", "JUV", "INT", "MIL", "NAP", "LAZ", "FIO", "ATA", "BOL", "TOR"}

func loadConfig() string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	return dbName
}

func main() {
	log.Info("Starting database seeder...")
	dbName := loadConfig()

	db, teardown, err := database.InitDB(dbName, "", "")
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	store := league.New(db)

	roleStart := map[league.Role]int{
		league.RoleGoalkeeper: 100,
		league.RoleDefender:   200,
		league.RoleMidfielder: 500,
		league.RoleForward:    800,
	}

	var players []league.Player
	for _, role := range league.Roles {
		for i := 0; i < playersPerRole; i++ {
			code := roleStart[role] + i
			players = append(players, league.Player{
				Code:     code,
				Name:     fmt.Sprintf("PLAYER %d", code),
				RealTeam: teams[rand.Intn(len(teams))],
				Role:     role,
				Cost:     5 + rand.Intn(30),
			})
		}
	}
	if err := store.BulkCreatePlayers(players); err != nil {
		log.Fatalf("Failed to insert players: %s", err)
	}
	log.Info("Inserted players", "count", len(players))

	for day := 1; day <= numDays; day++ {
		var evs []league.Evaluation
		for _, p := range players {
			ev := league.Evaluation{
				PlayerCode: p.Code,
				Day:        day,
				Cost:       p.Cost + rand.Intn(7) - 3,
			}
			// Roughly a quarter of the roster sits out each matchday.
			if rand.Intn(4) > 0 {
				ev.Vote = 4 + rand.Float64()*6
				ev.FantaVote = ev.Vote + rand.Float64()*3 - 1
			}
			evs = append(evs, ev)
		}
		if err := store.BulkCreateEvaluations(evs); err != nil {
			log.Fatalf("Failed to insert evaluations for day %d: %s", day, err)
		}
		log.Info("Inserted evaluations", "day", day, "count", len(evs))
	}

	log.Info("Seeding complete", "players", len(players), "days", numDays)
}
