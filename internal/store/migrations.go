package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    status        TEXT NOT NULL DEFAULT 'running',
    started_at    DATETIME NOT NULL,
    finished_at   DATETIME,
    adapters_used TEXT NOT NULL DEFAULT '[]',
    log           TEXT NOT NULL DEFAULT '[]',
    campaign      TEXT NOT NULL DEFAULT 'memex'
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS prospects (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id             TEXT NOT NULL REFERENCES runs(id),
    source             TEXT NOT NULL,
    username           TEXT NOT NULL,
    display_name       TEXT NOT NULL DEFAULT '',
    profile_url        TEXT NOT NULL DEFAULT '',
    bio                TEXT NOT NULL DEFAULT '',
    category           TEXT NOT NULL DEFAULT '',
    signals            TEXT NOT NULL DEFAULT '[]',
    raw_data           TEXT NOT NULL DEFAULT '{}',
    trust_gap_score    REAL NOT NULL DEFAULT 0,
    reachability_score REAL NOT NULL DEFAULT 0,
    relevance_score    REAL NOT NULL DEFAULT 0,
    final_score        REAL NOT NULL DEFAULT 0,
    outreach_message   TEXT NOT NULL DEFAULT '',
    deep_profile       TEXT NOT NULL DEFAULT 'null',
    fetched_at         DATETIME NOT NULL,
    UNIQUE(run_id, source, username)
);

CREATE INDEX IF NOT EXISTS idx_prospects_run ON prospects(run_id);
CREATE INDEX IF NOT EXISTS idx_prospects_score ON prospects(final_score DESC);
CREATE INDEX IF NOT EXISTS idx_prospects_fetched_at ON prospects(fetched_at);
`
