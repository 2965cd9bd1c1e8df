package modkit

import "telejoin/internal/modkit/module"

// Module is the common surface for API modules that can mount routes and expose ports
// it aliases module.Module so modules can import either package
type Module = module.Module
