package store

// Tables lists the application tables, dependents first.
var Tables = []string{"appeal_images", "appeals", "comments", "activities", "users"}

// Schema returns the statements that create the tables of dialect.
func Schema(dialect Dialect) []string {
	if dialect == MySQL {
		return mysqlSchema
	}
	return sqliteSchema
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    user_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    user_name VARCHAR(64) NOT NULL,
    role INT NOT NULL DEFAULT 0,
    prohibited TINYINT(1) NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS activities (
    act_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    act_name VARCHAR(128) NOT NULL,
    act_time DATETIME NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS comments (
    cmt_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    cmt_content VARCHAR(1024) NOT NULL,
    cmt_time DATETIME NOT NULL,
    act_id INT NOT NULL,
    user_id INT NOT NULL,
    parent_id INT NOT NULL DEFAULT 0,
    CONSTRAINT fk_comments_act FOREIGN KEY (act_id) REFERENCES activities(act_id),
    CONSTRAINT fk_comments_user FOREIGN KEY (user_id) REFERENCES users(user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS appeals (
    app_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    app_time DATETIME NOT NULL,
    app_matters INT NOT NULL,
    app_content VARCHAR(1024) NOT NULL,
    user_id INT NULL,
    act_id INT NULL,
    cmt_id INT NULL,
    complainant_id INT NOT NULL,
    CONSTRAINT fk_appeals_user FOREIGN KEY (user_id) REFERENCES users(user_id),
    CONSTRAINT fk_appeals_act FOREIGN KEY (act_id) REFERENCES activities(act_id),
    CONSTRAINT fk_appeals_cmt FOREIGN KEY (cmt_id) REFERENCES comments(cmt_id),
    CONSTRAINT fk_appeals_complainant FOREIGN KEY (complainant_id) REFERENCES users(user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS appeal_images (
    app_img_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    app_id INT NOT NULL,
    app_image VARCHAR(512) NOT NULL,
    CONSTRAINT fk_appeal_images_app FOREIGN KEY (app_id) REFERENCES appeals(app_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_name TEXT NOT NULL,
    role INTEGER NOT NULL DEFAULT 0,
    prohibited BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS activities (
    act_id INTEGER PRIMARY KEY AUTOINCREMENT,
    act_name TEXT NOT NULL,
    act_time DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS comments (
    cmt_id INTEGER PRIMARY KEY AUTOINCREMENT,
    cmt_content TEXT NOT NULL,
    cmt_time DATETIME NOT NULL,
    act_id INTEGER NOT NULL REFERENCES activities(act_id),
    user_id INTEGER NOT NULL REFERENCES users(user_id),
    parent_id INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS appeals (
    app_id INTEGER PRIMARY KEY AUTOINCREMENT,
    app_time DATETIME NOT NULL,
    app_matters INTEGER NOT NULL,
    app_content TEXT NOT NULL,
    user_id INTEGER REFERENCES users(user_id),
    act_id INTEGER REFERENCES activities(act_id),
    cmt_id INTEGER REFERENCES comments(cmt_id),
    complainant_id INTEGER NOT NULL REFERENCES users(user_id)
)`,
	`CREATE TABLE IF NOT EXISTS appeal_images (
    app_img_id INTEGER PRIMARY KEY AUTOINCREMENT,
    app_id INTEGER NOT NULL REFERENCES appeals(app_id),
    app_image TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_appeals_time ON appeals(app_time)`,
	`CREATE INDEX IF NOT EXISTS idx_appeal_images_app ON appeal_images(app_id)`,
}
