package data

const SQLCreate = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS run
(
    run_id     INTEGER PRIMARY KEY NOT NULL,
    created_at TIMESTAMP           NOT NULL,
    source     TEXT                NOT NULL,
    mode       TEXT                NOT NULL,
    bins       INTEGER             NOT NULL CHECK ( bins > 0 ),
    skipped    INTEGER             NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sample
(
    run_id INTEGER NOT NULL,
    idx    INTEGER NOT NULL CHECK ( idx >= 0 ),
    token  TEXT    NOT NULL,
    value  REAL,
    PRIMARY KEY (run_id, idx),
    FOREIGN KEY (run_id) REFERENCES run (run_id) ON DELETE CASCADE
);`
