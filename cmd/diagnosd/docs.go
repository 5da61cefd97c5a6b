package main

// General API documentation for swaggo. The rendered document lives in the
// docs package and is served at /swagger/doc.json.
//
// @title           diagnosd API
// @version         1.0
// @description     Breast tumor diagnosis predictions from a pre-trained random forest.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
