package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Menu Catalog Schema

-- 1. Places (food collection points)
CREATE TABLE IF NOT EXISTS places (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    food_type VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 2. Menu Items
-- position is the catalog order; the intent parser resolves ambiguous
-- matches by taking the later position, so keep specific names after the
-- shorter names they contain ("Pizza" before "Large Pizza").
CREATE TABLE IF NOT EXISTS menu_items (
    id SERIAL PRIMARY KEY,
    place_id INTEGER NOT NULL REFERENCES places(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    price_minor INTEGER DEFAULT 0,
    position INTEGER NOT NULL,
    UNIQUE (place_id, name)
);

CREATE INDEX IF NOT EXISTS idx_menu_items_place_position
    ON menu_items (place_id, position);

-- Order Sheet Schema

-- 3. Order Sheets (one jsonb document per order board)
CREATE TABLE IF NOT EXISTS order_sheets (
    id UUID PRIMARY KEY,
    channel VARCHAR(50) NOT NULL,
    place_id INTEGER REFERENCES places(id) ON DELETE SET NULL,
    status VARCHAR(10) NOT NULL DEFAULT 'open',
    slack_ts VARCHAR(50),
    sheet JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- At most one open sheet per channel
CREATE UNIQUE INDEX IF NOT EXISTS idx_order_sheets_open_channel
    ON order_sheets (channel) WHERE status = 'open';

CREATE INDEX IF NOT EXISTS idx_order_sheets_channel ON order_sheets (channel);
`
