package database

// Target schema. Surrogate keys are auto-assigned serials; raw identifiers
// from the exports never reach these tables.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id SERIAL PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		phone VARCHAR(20),
		city VARCHAR(50),
		registration_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id SERIAL PRIMARY KEY,
		product_name VARCHAR(100) NOT NULL,
		category VARCHAR(50) NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		stock_quantity INT DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		customer_id INT NOT NULL REFERENCES customers(customer_id),
		order_date DATE NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL,
		status VARCHAR(20) DEFAULT 'Pending'
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(order_id),
		product_id INT NOT NULL REFERENCES products(product_id),
		quantity INT NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL,
		subtotal NUMERIC(10,2) NOT NULL
	)`,
}

// truncateStatements reset the tables in dependency order so the run is
// repeatable. RESTART IDENTITY keeps surrogate keys deterministic between
// identical runs.
var truncateStatements = []string{
	`TRUNCATE TABLE order_items RESTART IDENTITY CASCADE`,
	`TRUNCATE TABLE orders RESTART IDENTITY CASCADE`,
	`TRUNCATE TABLE products RESTART IDENTITY CASCADE`,
	`TRUNCATE TABLE customers RESTART IDENTITY CASCADE`,
}
