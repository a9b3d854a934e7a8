package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// These are the load-time constants of the application. A local JSON file
// (DefaultPath) may override any subset of them; there is no environment
// lookup.
// -----------------------------------------------------------------------------

const defaultJSON = `{
  "backend": "auto",
  "i2c_bus": "",
  "i2c_addr": 39,
  "pins": {
    "up": 17,
    "down": 27,
    "timer": 22
  },
  "debounce_ms": 300,
  "hw_debounce_ms": 200,
  "tick_ms": 1000,
  "loading_ms": 2000,
  "products_file": "products.txt"
}`
