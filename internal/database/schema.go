package database

import "database/sql"

// Schema DDL. CHECK constraints on the team budgets back up the invariants
// the settlement engine enforces; InnoDB row locks on these tables serialize
// concurrent settlements. The players.seq column preserves creation order for
// the by-set projection.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		team_id CHAR(36) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		logo_url VARCHAR(255) NOT NULL DEFAULT '',
		starting_budget BIGINT NOT NULL,
		remaining_budget BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		CONSTRAINT chk_teams_budget_floor CHECK (remaining_budget >= 0),
		CONSTRAINT chk_teams_budget_cap CHECK (remaining_budget <= starting_budget)
	)`,
	`CREATE TABLE IF NOT EXISTS player_sets (
		set_id CHAR(36) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		default_base_price BIGINT NOT NULL,
		bidding_increment BIGINT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		player_id CHAR(36) PRIMARY KEY,
		seq BIGINT NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		age INT NOT NULL DEFAULT 0,
		role VARCHAR(50) NOT NULL DEFAULT '',
		batting_style VARCHAR(50) NOT NULL DEFAULT '',
		bowling_style VARCHAR(50) NOT NULL DEFAULT '',
		photo_url VARCHAR(255) NOT NULL DEFAULT '',
		base_price BIGINT NOT NULL,
		auction_status VARCHAR(10) NOT NULL DEFAULT 'Available',
		sold_price BIGINT NULL,
		sold_to_team CHAR(36) NULL,
		player_set CHAR(36) NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE KEY uq_players_seq (seq),
		KEY idx_players_set (player_set),
		KEY idx_players_team (sold_to_team),
		CONSTRAINT fk_players_set FOREIGN KEY (player_set) REFERENCES player_sets (set_id),
		CONSTRAINT fk_players_team FOREIGN KEY (sold_to_team) REFERENCES teams (team_id)
	)`,
}

// InitSchema creates the ledger tables if they do not exist yet.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
