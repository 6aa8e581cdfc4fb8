package api

import (
	"errors"
	"fmt"
	"time"
)

// APIConfig represent the configuration for the entire scheduler application
type APIConfig struct {
	APIServer    *APIServerConfig    `yaml:"apiServer,omitempty"`
	Database     *DatabaseConfig     `yaml:"database,omitempty" env:",prefix=DATABASE_"`
	Scheduler    *SchedulerConfig    `yaml:"scheduler,omitempty"`
	GC           *GCConfig           `yaml:"gc,omitempty" env:",prefix=GC_"`
	Integrations *IntegrationsConfig `yaml:"integrations,omitempty" env:",prefix=INTEGRATIONS_"`
}

func (c *APIConfig) SetDefaults() {
	if c.APIServer == nil {
		c.APIServer = &APIServerConfig{}
	}
	c.APIServer.SetDefaults()

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	c.Database.SetDefaults()

	if c.Scheduler == nil {
		c.Scheduler = &SchedulerConfig{}
	}
	c.Scheduler.SetDefaults()

	if c.GC == nil {
		c.GC = &GCConfig{}
	}
	c.GC.SetDefaults()

	if c.Integrations == nil {
		c.Integrations = &IntegrationsConfig{}
	}
	c.Integrations.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.APIServer.Validate()
	if err != nil {
		return
	}

	err = c.Database.Validate()
	if err != nil {
		return
	}

	err = c.Scheduler.Validate()
	if err != nil {
		return
	}

	err = c.GC.Validate()
	if err != nil {
		return
	}

	err = c.Integrations.Validate()
	if err != nil {
		return
	}

	return nil
}

type APIServerConfig struct {
	BaseURL string `yaml:"baseURL"`
}

func (c *APIServerConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:5000"
	}
}

func (c *APIServerConfig) Validate() (err error) {
	if c.BaseURL == "" {
		return errors.New("Configuration item 'apiServer.baseURL' is required; please set it to the full http url for the scheduler")
	}

	return nil
}

type DatabaseDriver string

const (
	DatabaseDriverPostgres DatabaseDriver = "postgres"
	DatabaseDriverSqlite   DatabaseDriver = "sqlite"
)

// DatabaseConfig configures the connection to CockroachDB, or an embedded sqlite database for local runs
type DatabaseConfig struct {
	Driver                   DatabaseDriver `yaml:"driver"`
	DataSource               string         `yaml:"dataSource"`
	DatabaseName             string         `yaml:"databaseName"`
	Host                     string         `yaml:"host" env:"HOST,overwrite"`
	Insecure                 bool           `yaml:"insecure"`
	SslMode                  string         `yaml:"sslMode"`
	CertificateAuthorityPath string         `yaml:"certificateAuthorityPath"`
	CertificatePath          string         `yaml:"certificatePath"`
	CertificateKeyPath       string         `yaml:"certificateKeyPath"`
	Port                     int            `yaml:"port"`
	User                     string         `yaml:"user" env:"USER,overwrite"`
	Password                 string         `yaml:"password" env:"PASSWORD,overwrite"`
	MaxOpenConns             int            `yaml:"maxOpenConnections"`
	MaxIdleConns             int            `yaml:"maxIdleConnections"`
	ConnMaxLifetimeMinutes   int            `yaml:"connectionMaxLifetimeMinutes"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = DatabaseDriverPostgres
	}
	if c.Driver == DatabaseDriverSqlite {
		if c.DataSource == "" {
			c.DataSource = "file:estafette-ci-scheduler.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
		// sqlite allows a single writer, serialize through one connection
		if c.MaxOpenConns <= 0 {
			c.MaxOpenConns = 1
		}
		return
	}
	if c.DatabaseName == "" {
		c.DatabaseName = "defaultdb"
	}
	if c.Host == "" {
		c.Host = "estafette-ci-db-public"
	}
	if c.SslMode == "" {
		c.SslMode = "verify-full"
	}
	if c.CertificateAuthorityPath == "" {
		c.CertificateAuthorityPath = "/cockroach-certs/ca.crt"
	}
	if c.CertificatePath == "" {
		c.CertificatePath = "/cockroach-certs/tls.crt"
	}
	if c.CertificateKeyPath == "" {
		c.CertificateKeyPath = "/cockroach-certs/tls.key"
	}
	if c.Port <= 0 {
		c.Port = 26257
	}
	if c.User == "" {
		c.User = "root"
	}
}

func (c *DatabaseConfig) Validate() (err error) {
	switch c.Driver {
	case DatabaseDriverSqlite:
		if c.DataSource == "" {
			return errors.New("Configuration item 'database.dataSource' is required when 'database.driver' is sqlite")
		}
	case DatabaseDriverPostgres:
		if c.DatabaseName == "" {
			return errors.New("Configuration item 'database.databaseName' is required; please set it to the name of the cockroachdb database")
		}
		if c.Host == "" {
			return errors.New("Configuration item 'database.host' is required; please set it to the host of the cockroachdb database")
		}
		if c.Port <= 0 {
			return errors.New("Configuration item 'database.port' is required; please set it to the port of the cockroachdb database")
		}
		if c.User == "" {
			return errors.New("Configuration item 'database.user' is required; please set it to the user of the cockroachdb database")
		}
	default:
		return fmt.Errorf("Configuration item 'database.driver' has unsupported value '%v'; use 'postgres' or 'sqlite'", c.Driver)
	}

	return nil
}

// SchedulerConfig configures the test cost model
type SchedulerConfig struct {
	// Alpha is the weight of a new runtime observation in the moving average; higher values forget history faster
	Alpha float64 `yaml:"alpha"`
	// ColdStartCost is the cost assigned to tests without any recorded runtime
	ColdStartCost float64 `yaml:"coldStartCost"`
}

func (c *SchedulerConfig) SetDefaults() {
	if c.Alpha == 0 {
		c.Alpha = 0.3
	}
	if c.ColdStartCost == 0 {
		c.ColdStartCost = 1.0
	}
}

func (c *SchedulerConfig) Validate() (err error) {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("Configuration item 'scheduler.alpha' has value %v; it should be larger than 0 and at most 1", c.Alpha)
	}
	if c.ColdStartCost <= 0 {
		return fmt.Errorf("Configuration item 'scheduler.coldStartCost' has value %v; it should be larger than 0", c.ColdStartCost)
	}

	return nil
}

// GCConfig configures the garbage collection of compute instances and firewall rules left behind by finished builds
type GCConfig struct {
	Enable      bool               `yaml:"enable" env:"ENABLE,overwrite"`
	DryRun      bool               `yaml:"dryRun" env:"DRY_RUN,overwrite"`
	Interval    time.Duration      `yaml:"interval"`
	Timeout     time.Duration      `yaml:"timeout"`
	Parallelism int                `yaml:"parallelism"`
	Projects    []*GCProjectConfig `yaml:"projects"`
}

func (c *GCConfig) SetDefaults() {
	if c.Interval <= 0 {
		c.Interval = 15 * time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Minute
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 3
	}
	if c.Projects == nil {
		c.Projects = make([]*GCProjectConfig, 0)
	}
}

func (c *GCConfig) Validate() (err error) {
	for _, p := range c.Projects {
		err = p.Validate()
		if err != nil {
			return
		}
	}

	return nil
}

// GCProjectConfig ties a repository's builds to the cloud project their test machines run in
type GCProjectConfig struct {
	Repository  string `yaml:"repository"`
	Project     string `yaml:"project"`
	Zone        string `yaml:"zone"`
	GCFirewalls bool   `yaml:"gcFirewalls"`
}

func (c *GCProjectConfig) Validate() (err error) {
	if c.Repository == "" {
		return errors.New("Configuration item 'gc.projects[].repository' is required; please set it to the owner/name of the repository whose builds own the resources")
	}
	if c.Project == "" {
		return fmt.Errorf("Configuration item 'gc.projects[].project' is required for repository %v", c.Repository)
	}
	if c.Zone == "" {
		return fmt.Errorf("Configuration item 'gc.projects[].zone' is required for project %v", c.Project)
	}

	return nil
}

func (c *GCProjectConfig) String() string {
	return fmt.Sprintf("%v/%v/%v", c.Repository, c.Project, c.Zone)
}

type IntegrationsConfig struct {
	CircleCI *CircleCIConfig `yaml:"circleci,omitempty" env:",prefix=CIRCLECI_"`
	Compute  *ComputeConfig  `yaml:"compute,omitempty"`
}

func (c *IntegrationsConfig) SetDefaults() {
	if c.CircleCI == nil {
		c.CircleCI = &CircleCIConfig{}
	}
	c.CircleCI.SetDefaults()

	if c.Compute == nil {
		c.Compute = &ComputeConfig{}
	}
}

func (c *IntegrationsConfig) Validate() (err error) {
	return c.CircleCI.Validate()
}

// CircleCIConfig configures access to the CircleCI api used to find running builds
type CircleCIConfig struct {
	APIURL  string        `yaml:"apiURL"`
	Token   string        `yaml:"token" env:"TOKEN,overwrite"`
	Timeout time.Duration `yaml:"timeout"`
}

func (c *CircleCIConfig) SetDefaults() {
	if c.APIURL == "" {
		c.APIURL = "https://circleci.com/api/v1"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

func (c *CircleCIConfig) Validate() (err error) {
	if c.APIURL == "" {
		return errors.New("Configuration item 'integrations.circleci.apiURL' is required")
	}

	return nil
}

// ComputeConfig configures access to the Google Compute Engine api
type ComputeConfig struct {
	Enable          bool   `yaml:"enable"`
	CredentialsFile string `yaml:"credentialsFile"`
}
