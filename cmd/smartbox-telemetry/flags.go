package main

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort

	configurationFile
	boxesFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	rabbitURL
	redisAddr
	retentionCap
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",

		configurationFile: "/opt/smartbox/config/config.yaml",
		boxesFile:         "/opt/smartbox/config/boxes.csv",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "smartbox",
		dbSSLMode:  "disable",

		rabbitURL:    "",
		redisAddr:    "",
		retentionCap: "",
	}
}
